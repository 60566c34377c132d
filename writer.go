package treehash

import (
	"github.com/fasmat/treehash/internal/compress"
	"github.com/fasmat/treehash/internal/merger"
)

// Writer buffers bytes into fixed-size leaves and folds their hashes into
// a root using a Merger, one fill-a-segment-then-push-to-the-next-layer
// step at a time: the "layer" here is always the leaf, and the Merger
// itself takes care of everything above it.
//
// Writer is single-use: call Finish exactly once, and don't Write
// afterwards.
type Writer struct {
	leaf    []byte // buffered bytes not yet folded into a leaf hash
	leafLen int
	total   uint64
	merger  *merger.Merger

	finished bool
}

// NewWriter returns an empty Writer ready to accept bytes.
func NewWriter() *Writer {
	return &Writer{
		leaf:   make([]byte, 0, LeafLen),
		merger: merger.New(),
	}
}

// Write accepts input of any size and always consumes all of it, buffering
// bytes into LeafLen-sized leaves and folding completed leaf hashes into
// the underlying Merger as it goes. It never fails.
func (w *Writer) Write(data []byte) (int, error) {
	if w.finished {
		panic("treehash: Write called on a finished Writer")
	}
	n := len(data)
	for len(data) > 0 {
		if w.leafLen == LeafLen {
			h := compress.HashLeaf(w.leaf, compress.Interior)
			w.merger.Push(h)
			w.leaf = w.leaf[:0]
			w.leafLen = 0
		}
		want := LeafLen - w.leafLen
		take := min(want, len(data))
		w.leaf = append(w.leaf, data[:take]...)
		w.leafLen += take
		w.total += uint64(take)
		data = data[take:]
	}
	return n, nil
}

// Flush is a no-op. The bytes of the current leaf stay buffered until more
// input completes it or Finish hashes it; Flush does not hash them early.
func (w *Writer) Flush() error {
	return nil
}

// Finish returns the root hash over everything written so far. The Writer
// must not be used again afterwards.
func (w *Writer) Finish() Hash {
	if w.finished {
		panic("treehash: Finish called on a finished Writer")
	}
	w.finished = true

	if w.total <= LeafLen {
		return compress.HashLeaf(w.leaf, compress.Root(w.total))
	}
	lastLeaf := compress.HashLeaf(w.leaf, compress.Interior)
	w.merger.Push(lastLeaf)
	return w.merger.Finish(compress.Root(w.total))
}
