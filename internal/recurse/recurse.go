// Package recurse implements the pure recursive tree hash: a function from
// a byte slice straight to its root hash, in both a serial form and a
// fork-join parallel form that must agree bit-for-bit with it.
package recurse

import (
	"golang.org/x/sync/errgroup"

	"github.com/fasmat/treehash/internal/compress"
	"github.com/fasmat/treehash/internal/treeshape"
)

// maxSingleThreaded is the input size at and below which the parallel
// entry point falls back to the serial recursion: below a handful of
// chunks, spawning goroutines costs more than it saves.
const maxSingleThreaded = 4 * treeshape.LeafLen

// Hash recurses serially: for input at or below the chunk size it returns
// the leaf digest directly, otherwise it splits at the tree-shape boundary,
// hashes both halves as interior nodes, and combines them.
func Hash(data []byte, f compress.Finalization) compress.Hash {
	if len(data) <= treeshape.LeafLen {
		return compress.HashLeaf(data, f)
	}
	split := treeshape.LeftSubtreeLen(uint64(len(data)))
	left := Hash(data[:split], compress.Interior)
	right := Hash(data[split:], compress.Interior)
	return compress.HashParent(left, right, f)
}

// ForkJoin recurses the same way as Hash, but schedules the two halves of
// any split as a fork-join pair instead of hashing them one after another.
// It returns a digest identical to Hash for the same input.
func ForkJoin(data []byte, f compress.Finalization) compress.Hash {
	if len(data) <= treeshape.LeafLen {
		return compress.HashLeaf(data, f)
	}
	split := treeshape.LeftSubtreeLen(uint64(len(data)))

	var left, right compress.Hash
	var g errgroup.Group
	g.Go(func() error {
		left = ForkJoin(data[:split], compress.Interior)
		return nil
	})
	g.Go(func() error {
		right = ForkJoin(data[split:], compress.Interior)
		return nil
	})
	_ = g.Wait() // neither goroutine can fail; this only blocks for the join.

	return compress.HashParent(left, right, f)
}

// TopLevel is the all-at-once entry point: it picks serial recursion for
// small inputs and fork-join for larger ones. ParallelWriter's per-job
// workers intentionally call Hash directly instead: a job is already one
// unit of the writer's own parallelism, so recursing into fork-join inside
// it would only add goroutine overhead without hashing anything faster.
func TopLevel(data []byte, f compress.Finalization) compress.Hash {
	if len(data) <= maxSingleThreaded {
		return Hash(data, f)
	}
	return ForkJoin(data, f)
}
