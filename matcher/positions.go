package matcher

import "github.com/bits-and-blooms/bitset"

// MatchPositions reconstructs which item bytes a matching query used, for
// highlighting. pos is cleared and one bit is set per query byte. Returns
// false (with pos empty) when the query does not match.
//
// This re-runs the dynamic program with full matrices and a traceback. It
// allocates and is meant for visible rows only, never the ranking path.
func MatchPositions(query, item []byte, pos *bitset.BitSet) bool {
	pos.ClearAll()

	switch {
	case len(query) == 0:
		return true
	case len(query) > len(item):
		return false
	case len(query) == 1:
		return singlePosition(query[0], item, pos)
	}

	m, n := len(query), len(item)

	bonus := make([]float32, n)
	for j := 0; j < n; j++ {
		bonus[j] = bonusAt(item, j)
	}

	// Row-major m x n matrices.
	d := make([]float32, m*n)
	mm := make([]float32, m*n)

	for i := 0; i < m; i++ {
		qc := fold(query[i])
		mLeft := ScoreMin
		for j := 0; j < n; j++ {
			cell := ScoreMin
			if qc == fold(item[j]) {
				if i == 0 {
					cell = bonus[j]
				} else if j > 0 {
					up := mm[(i-1)*n+j-1] + bonus[j]
					cons := d[(i-1)*n+j-1] + consecutivePenalty
					if cons > up {
						up = cons
					}
					cell = up
				}
			}
			best := cell
			if g := mLeft + gapPenalty; g > best {
				best = g
			}
			d[i*n+j] = cell
			mm[i*n+j] = best
			mLeft = best
		}
	}

	if mm[(m-1)*n+n-1] == ScoreMin {
		return false
	}

	// Walk back from the bottom-right cell. A cell whose M equals its D is
	// where the i-th query byte matched; when that cell was reached through
	// the consecutive branch, the previous query byte must sit at j-1.
	matchRequired := false
	j := n - 1
	for i := m - 1; i >= 0; i-- {
		for ; j >= 0; j-- {
			cell := d[i*n+j]
			if cell == ScoreMin || (!matchRequired && cell != mm[i*n+j]) {
				continue
			}
			matchRequired = i > 0 && j > 0 &&
				mm[i*n+j] == d[(i-1)*n+j-1]+consecutivePenalty
			pos.Set(uint(j))
			j--
			break
		}
	}
	return true
}

func singlePosition(qc byte, item []byte, pos *bitset.BitSet) bool {
	qf := fold(qc)
	best := ScoreMin
	at := -1
	for j := 0; j < len(item); j++ {
		if fold(item[j]) != qf {
			continue
		}
		if b := bonusAt(item, j); b > best {
			best = b
			at = j
		}
	}
	if at < 0 {
		return false
	}
	pos.Set(uint(at))
	return true
}
