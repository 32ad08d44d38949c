package reader

import "sync/atomic"

// gensymCounter is the process-wide, monotonically increasing counter
// shared by every template evaluation in the process, regardless of which
// Reader or module produced it — gensyms from different templates, even in
// different goroutines, never collide because the counter is incremented
// atomically exactly once per template evaluation.
var gensymCounter uint64

// nextGensymCount increments and returns the shared counter.
func nextGensymCount() uint64 {
	return atomic.AddUint64(&gensymCounter, 1)
}
