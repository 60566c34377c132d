package treehash_test

import (
	"bytes"
	"testing"

	"github.com/fasmat/treehash"
)

func TestWriterFlushIsNoOp(t *testing.T) {
	t.Parallel()

	w := treehash.NewWriter()
	_, _ = w.Write([]byte("hello"))
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush must never fail, got %v", err)
	}
}

func TestWriterWriteAlwaysAcceptsEverything(t *testing.T) {
	t.Parallel()

	w := treehash.NewWriter()
	data := bytes.Repeat([]byte{0x5}, 123456)
	n, err := w.Write(data)
	if err != nil || n != len(data) {
		t.Fatalf("Write must accept all bytes, got n=%d err=%v", n, err)
	}
}

func TestWriterDoubleFinishPanics(t *testing.T) {
	t.Parallel()

	w := treehash.NewWriter()
	_, _ = w.Write([]byte("data"))
	w.Finish()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Finish twice")
		}
	}()
	w.Finish()
}

func TestWriterWriteAfterFinishPanics(t *testing.T) {
	t.Parallel()

	w := treehash.NewWriter()
	_, _ = w.Write([]byte("data"))
	w.Finish()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing after Finish")
		}
	}()
	_, _ = w.Write([]byte("more"))
}

func TestWriterSingleByteMatchesDirectLeafRoot(t *testing.T) {
	t.Parallel()

	w := treehash.NewWriter()
	_, _ = w.Write([]byte{0x42})
	got := w.Finish()

	want := treehash.Sum([]byte{0x42})
	if got != want {
		t.Fatalf("got %x, want %x", got, want)
	}
}
