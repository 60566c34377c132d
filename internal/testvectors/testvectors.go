// Package testvectors holds the boundary input lengths that every hashing
// path in treehash is expected to agree on. It exists so the various
// _test.go files across the module exercise the same set of lengths instead
// of each re-deriving it.
package testvectors

// LeafLen mirrors the LEAF_LEN constant; kept here rather than imported to
// avoid a dependency from this leaf package back into the rest of the module.
const LeafLen = 4096

// Lengths lists input sizes clustered around the 1, 2, 3, 4 and 16 leaf
// boundaries, plus the empty input and a few sub-leaf sizes.
var Lengths = []int{
	0,
	1,
	10,
	LeafLen - 1,
	LeafLen,
	LeafLen + 1,
	2*LeafLen - 1,
	2 * LeafLen,
	2*LeafLen + 1,
	3*LeafLen - 1,
	3 * LeafLen,
	3*LeafLen + 1,
	4*LeafLen - 1,
	4 * LeafLen,
	4*LeafLen + 1,
	16*LeafLen - 1,
	16 * LeafLen,
	16*LeafLen + 1,
}

// JobBoundaryLengths extends Lengths with sizes around a job/max-jobs
// boundary; callers pass in the job size and worker cap so this stays
// independent of any particular writer's defaults.
func JobBoundaryLengths(jobSize, maxJobs int) []int {
	out := make([]int, 0, len(Lengths)+9)
	out = append(out, Lengths...)
	out = append(out,
		jobSize-1, jobSize, jobSize+1,
		maxJobs*jobSize-1, maxJobs*jobSize, maxJobs*jobSize+1,
		2*maxJobs*jobSize-1, 2*maxJobs*jobSize, 2*maxJobs*jobSize+1,
	)
	return out
}
