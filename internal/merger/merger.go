// Package merger implements the incremental binary-counter subtree folder:
// it turns a stream of already-computed subtree hashes into a single root
// hash, folding them layer by layer the way a tree is built bottom-up,
// except the invariant here is phrased over a flat stack rather than a
// linked list of layers.
package merger

import "github.com/fasmat/treehash/internal/compress"

// MaxTreeDepth bounds the subtree stack: it is large enough to cover any
// input up to 2^64-1 bytes.
const MaxTreeDepth = 64

// Merger folds subtree hashes pushed in left-to-right input order into a
// root hash. The number of hashes on its stack always equals the
// population count of the number of subtrees pushed so far: pushing a
// subtree is arithmetically identical to incrementing a binary counter,
// and a merge is a carry propagating through that counter.
//
// A Merger is single-use: call Finish (or drain Finish via MergeFinish) at
// most once, and never push afterwards.
type Merger struct {
	subtrees [MaxTreeDepth]compress.Hash
	stackLen int
	count    uint64
	finished bool
}

// New returns an empty Merger, ready to accept pushes.
func New() *Merger {
	return &Merger{}
}

func popcount(n uint64) int {
	c := 0
	for n != 0 {
		c++
		n &= n - 1
	}
	return c
}

// needsMerge reports whether the top two stack entries must be combined
// before another subtree can be pushed: true exactly when the stack holds
// more hashes than there are set bits in the subtree count, i.e. a carry is
// pending.
func (m *Merger) needsMerge() bool {
	return m.stackLen > popcount(m.count)
}

// mergeInner pops the two topmost entries, combines them with the given
// finalization, and pushes the result back. It returns the parent node
// bytes for callers building an encoded tree.
func (m *Merger) mergeInner(f compress.Finalization) compress.ParentNode {
	right := m.subtrees[m.stackLen-1]
	left := m.subtrees[m.stackLen-2]
	m.stackLen -= 2

	parent := compress.MakeParentNode(left, right)
	m.subtrees[m.stackLen] = compress.HashParent(left, right, f)
	m.stackLen++
	return parent
}

// Push adds a subtree hash. Every pushed hash must be the digest of a
// perfect subtree of a fixed size 2^k * LEAF_LEN for some constant k, with
// the sole exception that the very last hash ever pushed may represent a
// shorter (but non-empty) final subtree. Violating this is undefined
// behavior detected only by Finish producing a meaningless root.
//
// Merges performed here are always interior: at push time there is no way
// to know whether a later push will still extend the tree.
func (m *Merger) Push(h compress.Hash) {
	if m.finished {
		panic("merger: Push called on a finished Merger")
	}
	for m.needsMerge() {
		m.mergeInner(compress.Interior)
	}
	m.subtrees[m.stackLen] = h
	m.stackLen++
	m.count++
}

// MergeParent performs one pending interior merge and returns its parent
// node bytes, or returns ok=false if no merge is currently pending. Callers
// that want every parent node byte pair (to build an encoded tree) call
// this in a loop right after each Push except the last one, and then drain
// MergeFinish: draining after the last push can leave a single subtree on
// the stack, and MergeFinish panics on that. Parent nodes come out
// smallest-subtree-first.
func (m *Merger) MergeParent() (node compress.ParentNode, ok bool) {
	if m.finished {
		panic("merger: MergeParent called on a finished Merger")
	}
	if !m.needsMerge() {
		return compress.ParentNode{}, false
	}
	return m.mergeInner(compress.Interior), true
}

// MergeFinish drains the stack one merge at a time. It requires at least
// two hashes on the stack. While more than two remain it performs one
// interior merge and returns only the parent bytes. On the final merge (when
// exactly two hashes remain) it merges with the supplied finalization and
// additionally returns the root hash. Callers call this in a loop until the
// root is returned.
func (m *Merger) MergeFinish(f compress.Finalization) (node compress.ParentNode, root compress.Hash, done bool) {
	if m.finished {
		panic("merger: MergeFinish called on a finished Merger")
	}
	if m.stackLen < 2 {
		panic("merger: MergeFinish requires at least two subtrees on the stack")
	}
	if m.stackLen > 2 {
		return m.mergeInner(compress.Interior), compress.Hash{}, false
	}
	node = m.mergeInner(f)
	root = m.subtrees[m.stackLen-1]
	m.stackLen--
	m.finished = true
	return node, root, true
}

// Finish is a convenience wrapper around MergeFinish for callers who only
// want the root hash and don't need the parent node bytes for an encoded
// tree. The Merger must not be used again afterwards.
func (m *Merger) Finish(f compress.Finalization) compress.Hash {
	for {
		_, root, done := m.MergeFinish(f)
		if done {
			return root
		}
	}
}
