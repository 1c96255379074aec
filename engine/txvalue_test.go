package engine

import (
	"sync"
	"testing"
)

func TestTxValue_InitialLoad(t *testing.T) {
	tx := NewTxValue[string]()
	v, tick, changed := tx.Load()
	if changed {
		t.Fatal("fresh TxValue must not report a change")
	}
	if *v != "" || tick != 0 {
		t.Fatalf("got %q tick=%d, want empty tick=0", *v, tick)
	}
}

func TestTxValue_PublishLoad(t *testing.T) {
	tx := NewTxValue[string]()

	*tx.WriteBuffer() = "one"
	tx.Publish()

	v, tick, changed := tx.Load()
	if !changed || *v != "one" || tick != 1 {
		t.Fatalf("got %q tick=%d changed=%v", *v, tick, changed)
	}

	// Nothing new: same buffer, no change.
	v, tick, changed = tx.Load()
	if changed || *v != "one" || tick != 1 {
		t.Fatalf("second load: got %q tick=%d changed=%v", *v, tick, changed)
	}
}

func TestTxValue_LoadSkipsToLatest(t *testing.T) {
	tx := NewTxValue[string]()

	*tx.WriteBuffer() = "one"
	tx.Publish()
	*tx.WriteBuffer() = "two"
	tx.Publish()

	v, tick, changed := tx.Load()
	if !changed || *v != "two" || tick != 2 {
		t.Fatalf("got %q tick=%d changed=%v, want latest", *v, tick, changed)
	}
	if tx.WriteTick() != 2 {
		t.Fatalf("WriteTick = %d, want 2", tx.WriteTick())
	}
}

func TestTxValue_Peek(t *testing.T) {
	tx := NewTxValue[string]()

	v, tick := tx.Peek()
	if v != "" || tick != 0 {
		t.Fatalf("fresh Peek = %q tick=%d", v, tick)
	}

	*tx.WriteBuffer() = "one"
	tx.Publish()
	if v, tick := tx.Peek(); v != "one" || tick != 1 {
		t.Fatalf("Peek = %q tick=%d, want pending value", v, tick)
	}

	// After the consumer loads, Peek keeps returning the latest value.
	tx.Load()
	if v, tick := tx.Peek(); v != "one" || tick != 1 {
		t.Fatalf("Peek after Load = %q tick=%d", v, tick)
	}
}

// The consumer's buffer must stay untouched by publishes until the next
// Load hands ownership back.
func TestTxValue_ReaderOwnsReadBuffer(t *testing.T) {
	tx := NewTxValue[Results]()

	wb := tx.WriteBuffer()
	wb.Matches = append(wb.Matches[:0], Match{Index: 1, Score: 1})
	wb.ItemsTick = 1
	tx.Publish()

	rb, _, _ := tx.Load()
	if len(rb.Matches) != 1 || rb.Matches[0].Index != 1 {
		t.Fatalf("unexpected read buffer: %+v", rb)
	}

	// Two more publishes cycle the write and pending slots; neither may
	// be the reader's buffer.
	for i := 2; i <= 3; i++ {
		wb := tx.WriteBuffer()
		if wb == rb {
			t.Fatal("writer handed the reader-owned buffer")
		}
		wb.Matches = append(wb.Matches[:0], Match{Index: uint32(i)})
		wb.ItemsTick = uint64(i)
		tx.Publish()
	}
	if rb.ItemsTick != 1 || rb.Matches[0].Index != 1 {
		t.Fatalf("read buffer overwritten while owned: %+v", rb)
	}
}

func TestTxValue_ConcurrentPublishLoad(t *testing.T) {
	tx := NewTxValue[uint64]()
	const rounds = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= rounds; i++ {
			*tx.WriteBuffer() = i
			tx.Publish()
		}
	}()

	var lastVal, lastTick uint64
	for lastTick < rounds {
		v, tick, changed := tx.Load()
		if changed {
			if tick <= lastTick {
				t.Fatalf("tick went backwards: %d after %d", tick, lastTick)
			}
			if *v < lastVal {
				t.Fatalf("value went backwards: %d after %d", *v, lastVal)
			}
			// Value and tick must travel together.
			if *v != tick {
				t.Fatalf("value %d does not match tick %d", *v, tick)
			}
			lastVal, lastTick = *v, tick
		}
	}
	wg.Wait()
}

func TestEvents_PostWait(t *testing.T) {
	e := newEvents()

	e.post(evCommit)
	e.post(evQuery)
	if got := e.wait(); got != evCommit|evQuery {
		t.Fatalf("wait = %b, want commit|query", got)
	}

	e.post(evStop)
	if got := e.wait(); got != evStop {
		t.Fatalf("wait = %b, want stop", got)
	}
}

func TestEvents_PostFromManyGoroutines(t *testing.T) {
	e := newEvents()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				e.post(evCommit)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		e.post(evStop)
		close(done)
	}()

	for {
		ev := e.wait()
		if ev&evStop != 0 {
			break
		}
	}
	<-done
}
