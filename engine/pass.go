package engine

import "sync/atomic"

// pass is the shared state of one scoring run: the committed item count and
// query version it was dispatched for, the cooperative cancel flag, and one
// shard slot per worker. The coordinator owns the pass; workers hold a
// borrowed reference for its duration.
type pass struct {
	itemsTick uint64
	query     []byte
	queryTick uint64

	cancel      atomic.Bool
	outstanding atomic.Int32

	// shards[w] is worker w's sorted match list, set once before the
	// worker decrements outstanding. A cancelled worker leaves its slot
	// nil; a cancelled pass is never merged.
	shards [][]Match
}

// shardRange returns worker id's contiguous index range within [0, total).
// The first total%n shards take one extra item.
func shardRange(total uint64, id, n int) (uint64, uint64) {
	per := total / uint64(n)
	rem := total % uint64(n)
	lo := uint64(id)*per + min(uint64(id), rem)
	hi := lo + per
	if uint64(id) < rem {
		hi++
	}
	return lo, hi
}
