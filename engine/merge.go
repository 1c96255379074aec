package engine

// mergeSource is one shard being consumed by the merge, cursor included.
type mergeSource struct {
	shard []Match
	pos   int
}

func (s mergeSource) head() Match {
	return s.shard[s.pos]
}

// mergeHeap is a small value-based heap of shard cursors ordered by their
// head match, best first. Value storage keeps the merge allocation-free
// beyond the backing slice.
type mergeHeap struct {
	items []mergeSource
}

func (h *mergeHeap) less(i, j int) bool {
	return compareMatches(h.items[i].head(), h.items[j].head()) < 0
}

func (h *mergeHeap) push(s mergeSource) {
	h.items = append(h.items, s)
	h.siftUp(len(h.items) - 1)
}

func (h *mergeHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *mergeHeap) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		best := left
		if right := left + 1; right < n && h.less(right, left) {
			best = right
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}

// mergeShards merges the per-worker sorted shards into dst in
// (score desc, index asc) order and returns the extended slice.
func mergeShards(dst []Match, shards [][]Match) []Match {
	var h mergeHeap
	h.items = make([]mergeSource, 0, len(shards))
	for _, s := range shards {
		if len(s) > 0 {
			h.push(mergeSource{shard: s})
		}
	}

	for len(h.items) > 0 {
		src := &h.items[0]
		dst = append(dst, src.head())
		src.pos++
		if src.pos == len(src.shard) {
			last := len(h.items) - 1
			h.items[0] = h.items[last]
			h.items = h.items[:last]
		}
		if len(h.items) > 0 {
			h.siftDown(0)
		}
	}
	return dst
}
