package engine

import "sync/atomic"

// Event bits posted to the coordinator. Any subset may be pending on a
// single wake.
const (
	evCommit uint32 = 1 << iota
	evQuery
	evDone
	evStop
)

// events is an accumulating event set with a one-slot wake channel.
// Posting is non-blocking from any goroutine; the single waiter drains all
// pending bits at once. Spurious wakes are possible and harmless.
type events struct {
	flags atomic.Uint32
	wake  chan struct{}
}

func newEvents() *events {
	return &events{wake: make(chan struct{}, 1)}
}

// post adds the given bits and wakes the waiter.
func (e *events) post(f uint32) {
	e.flags.Or(f)
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// wait blocks until at least one post happened, then returns and clears
// all pending bits. May return 0 after a spurious wake.
func (e *events) wait() uint32 {
	<-e.wake
	return e.flags.Swap(0)
}
