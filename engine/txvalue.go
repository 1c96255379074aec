package engine

import (
	"sync"
	"sync/atomic"
)

// TxValue is a single-producer/single-consumer transactional cell with
// three slots: a producer-owned write buffer, a pending slot, and a
// consumer-owned read buffer. Publish and Load swap pointers under a mutex
// held for O(1); neither side ever blocks on the other's buffer.
//
// Every Publish bumps the write tick. The consumer receives the tick that
// produced the value it loaded, so value and version always travel
// together.
type TxValue[T any] struct {
	mu      sync.Mutex
	pending *T
	dirty   bool
	tick    uint64

	// writeTick mirrors tick for lock-free observers (Processing).
	writeTick atomic.Uint64

	write    *T
	read     *T
	readTick uint64
}

// NewTxValue creates a TxValue with zero-valued buffers and tick 0.
func NewTxValue[T any]() *TxValue[T] {
	return &TxValue[T]{
		pending: new(T),
		write:   new(T),
		read:    new(T),
	}
}

// WriteBuffer returns the producer-owned buffer. The producer may mutate it
// freely until the next Publish.
func (t *TxValue[T]) WriteBuffer() *T {
	return t.write
}

// Publish swaps the write buffer into the pending slot and bumps the write
// tick. The previous pending value becomes the next write buffer and may be
// overwritten.
func (t *TxValue[T]) Publish() {
	t.mu.Lock()
	t.write, t.pending = t.pending, t.write
	t.dirty = true
	t.tick++
	t.writeTick.Store(t.tick)
	t.mu.Unlock()
}

// Load swaps the read buffer with the pending slot if a new value was
// published since the last Load. It returns the consumer-owned buffer, the
// tick of the Publish that produced it, and whether the value changed.
func (t *TxValue[T]) Load() (*T, uint64, bool) {
	t.mu.Lock()
	changed := t.dirty
	if changed {
		t.read, t.pending = t.pending, t.read
		t.dirty = false
		t.readTick = t.tick
	}
	t.mu.Unlock()
	return t.read, t.readTick, changed
}

// ReadBuffer returns the consumer-owned buffer from the last Load without
// checking for a newer value.
func (t *TxValue[T]) ReadBuffer() *T {
	return t.read
}

// Peek returns a copy of the most recently published value and its tick
// without transferring buffer ownership. Unlike Load it may be called from
// any goroutine, as long as the consumer never mutates its buffer.
func (t *TxValue[T]) Peek() (T, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		return *t.pending, t.tick
	}
	return *t.read, t.readTick
}

// WriteTick returns the number of Publishes so far. Safe from any
// goroutine.
func (t *TxValue[T]) WriteTick() uint64 {
	return t.writeTick.Load()
}
