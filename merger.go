package treehash

import (
	"github.com/fasmat/treehash/internal/compress"
	"github.com/fasmat/treehash/internal/merger"
)

// Merger incrementally folds a stream of subtree hashes into a root hash,
// for callers that already have subtree digests in hand (e.g. multiple
// machines each hashing a shard) or that need the ParentNode byte pairs for
// an encoded-tree format. Most callers should use Writer or ParallelWriter
// instead.
//
// A Merger is single-use: call Finish (or drain MergeFinish) exactly once,
// and never Push afterwards.
type Merger = merger.Merger

// NewMerger returns an empty Merger ready to accept pushes.
func NewMerger() *Merger {
	return merger.New()
}

// Finalization distinguishes the interior nodes of a tree, which must never
// produce a digest that could collide with a root digest, from the single
// root node, whose digest additionally commits to the total input length.
// Push and MergeParent take no finalization and always merge as interior
// nodes. Finish, and every MergeFinish call, take RootFinalization(totalLen)
// when the pushed subtrees cover the whole input, or Interior when they form
// a subtree of a larger tree.
type Finalization = compress.Finalization

// Interior is the finalization for every node of a tree except its root.
func Interior() Finalization {
	return compress.Interior
}

// RootFinalization is the finalization for the single root node of a tree
// over totalLen bytes of input.
func RootFinalization(totalLen uint64) Finalization {
	return compress.Root(totalLen)
}
