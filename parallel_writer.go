package treehash

import (
	"runtime"

	"github.com/fasmat/treehash/internal/compress"
	"github.com/fasmat/treehash/internal/merger"
	"github.com/fasmat/treehash/internal/recurse"
)

// DefaultJobSize is the default size of one job buffer handed to a worker:
// a power-of-two multiple of LeafLen chosen to amortize goroutine dispatch
// overhead without holding back too much unhashed input per job.
const DefaultJobSize = 65536

// DefaultMaxJobs is the default ceiling on outstanding worker buffers,
// scaled to the number of available CPUs.
func DefaultMaxJobs() int {
	return 8 * runtime.NumCPU()
}

// jobResult is what a worker goroutine sends back: the hash of the buffer
// it was handed, plus that same buffer so it can be recycled.
type jobResult struct {
	hash compress.Hash
	buf  []byte
}

// ParallelWriter has the same Write/Finish surface as Writer, but buffers
// input into multi-leaf job-sized chunks and farms them out to worker
// goroutines, reassembling the results in input order through an ordered
// queue of one-shot channels before folding them into a Merger. It produces
// the same root hash as Writer and Sum for the same bytes.
//
// ParallelWriter is not safe for concurrent use by multiple goroutines; it
// is single-use like Writer.
type ParallelWriter struct {
	merger *merger.Merger
	total  uint64

	current []byte
	free    [][]byte

	// receivers is the ordered completion queue: oldest (earliest
	// input-offset) job first.
	receivers []chan jobResult

	jobSize int
	maxJobs int

	finished bool
}

// NewParallelWriter returns a ParallelWriter using DefaultJobSize and
// DefaultMaxJobs.
func NewParallelWriter() *ParallelWriter {
	return NewParallelWriterSize(DefaultJobSize, DefaultMaxJobs())
}

// NewParallelWriterSize returns a ParallelWriter with an explicit job size
// and worker cap, mainly for benchmarking. jobSize must be a power-of-two
// multiple of LeafLen; violating that is a programmer error and panics.
func NewParallelWriterSize(jobSize, maxJobs int) *ParallelWriter {
	if jobSize <= 0 || jobSize%LeafLen != 0 {
		panic("treehash: job size must be a positive multiple of LeafLen")
	}
	leaves := jobSize / LeafLen
	if leaves&(leaves-1) != 0 {
		panic("treehash: job size must be a power-of-two multiple of LeafLen")
	}
	if maxJobs < 1 {
		panic("treehash: max jobs must be at least 1")
	}
	return &ParallelWriter{
		merger:  merger.New(),
		current: make([]byte, 0),
		jobSize: jobSize,
		maxJobs: maxJobs,
	}
}

// Write accepts input of any size and always consumes all of it.
func (pw *ParallelWriter) Write(data []byte) (int, error) {
	if pw.finished {
		panic("treehash: Write called on a finished ParallelWriter")
	}
	n := len(data)
	for len(data) > 0 {
		if len(pw.current) == pw.jobSize {
			pw.dispatchCurrent()
		}
		want := pw.jobSize - len(pw.current)
		take := min(want, len(data))
		pw.current = append(pw.current, data[:take]...)
		pw.total += uint64(take)
		data = data[take:]
	}
	return n, nil
}

// Flush is a no-op; everything Write accepts is either already dispatched
// to a worker or sitting in the current job buffer.
func (pw *ParallelWriter) Flush() error {
	return nil
}

// dispatchCurrent obtains a fresh buffer for the caller to keep filling,
// and spawns a worker to hash the buffer that just filled up.
func (pw *ParallelWriter) dispatchCurrent() {
	next := pw.acquireBuffer()
	next = next[:0]

	full := pw.current
	pw.current = next

	result := make(chan jobResult, 1)
	pw.receivers = append(pw.receivers, result)
	go func(buf []byte) {
		h := recurse.Hash(buf, compress.Interior)
		result <- jobResult{hash: h, buf: buf}
	}(full)
}

// acquireBuffer returns a buffer to use as the new current job buffer:
// preferably a recycled one, else a freshly allocated one if there's still
// room under maxJobs, else a buffer freed up by awaiting half the
// outstanding workers.
func (pw *ParallelWriter) acquireBuffer() []byte {
	if n := len(pw.free); n > 0 {
		buf := pw.free[n-1]
		pw.free = pw.free[:n-1]
		return buf
	}
	if len(pw.receivers) < pw.maxJobs {
		return make([]byte, 0, pw.jobSize)
	}
	return pw.awaitHalf()
}

// awaitHalf blocks on the middle outstanding receiver, drains every
// receiver strictly before it (returning their buffers to the free pool),
// and returns the middle receiver's own buffer directly to the caller so
// allocation pressure stays flat. Blocking on the head would mean a context
// switch on every short wait; blocking on the tail would starve workers of
// fresh input. The middle amortizes both.
func (pw *ParallelWriter) awaitHalf() []byte {
	half := len(pw.receivers) / 2

	halfResult := <-pw.receivers[half]

	for _, ch := range pw.receivers[:half] {
		r := <-ch
		pw.merger.Push(r.hash)
		pw.free = append(pw.free, r.buf)
	}

	pw.receivers = pw.receivers[half+1:]
	pw.merger.Push(halfResult.hash)
	return halfResult.buf
}

// Finish returns the root hash over everything written so far. The
// ParallelWriter must not be used again afterwards.
func (pw *ParallelWriter) Finish() Hash {
	if pw.finished {
		panic("treehash: Finish called on a finished ParallelWriter")
	}
	pw.finished = true

	if pw.total <= uint64(pw.jobSize) {
		return recurse.Hash(pw.current, compress.Root(pw.total))
	}
	lastJobHash := recurse.Hash(pw.current, compress.Interior)
	for _, ch := range pw.receivers {
		r := <-ch
		pw.merger.Push(r.hash)
	}
	pw.receivers = nil
	pw.merger.Push(lastJobHash)
	return pw.merger.Finish(compress.Root(pw.total))
}
