package treehash

import (
	"github.com/fasmat/treehash/internal/compress"
	"github.com/fasmat/treehash/internal/recurse"
)

// HashLen is the fixed size in bytes of every digest this package produces.
const HashLen = compress.HashLen

// LeafLen is the chunk size: the largest number of input bytes hashed as a
// single leaf before the tree grows a level.
const LeafLen = 4096

// Hash is a 32-byte tree digest, including the root hash returned by every
// function and type in this package.
type Hash = compress.Hash

// ParentNode is the 64-byte left||right child pair a parent compression
// hashes, exposed for callers building an encoded-tree representation on
// top of Merger's MergeParent/MergeFinish hooks.
type ParentNode = compress.ParentNode

// Sum computes the root digest of data in one call. Inputs larger than a
// few chunks are hashed using a fork-join worker split; smaller inputs are
// hashed serially, since parallelizing them would cost more than it saves.
func Sum(data []byte) Hash {
	return recurse.TopLevel(data, compress.Root(uint64(len(data))))
}

// SumSingleThreaded computes the root digest of data without ever spawning
// a goroutine. It always returns the same digest as Sum; it exists for
// benchmarking and for callers that cannot tolerate parallelism.
func SumSingleThreaded(data []byte) Hash {
	return recurse.Hash(data, compress.Root(uint64(len(data))))
}
