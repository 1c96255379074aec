package matcher

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positionsOf(t *testing.T, query, item string) []uint {
	t.Helper()
	var pos bitset.BitSet
	require.True(t, MatchPositions([]byte(query), []byte(item), &pos))
	out := make([]uint, 0, pos.Count())
	for i, ok := pos.NextSet(0); ok; i, ok = pos.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

func TestMatchPositions_CaseFold(t *testing.T) {
	assert.Equal(t, []uint{0, 3}, positionsOf(t, "fb", "FooBar"))
}

func TestMatchPositions_Simple(t *testing.T) {
	assert.Equal(t, []uint{0, 1, 2}, positionsOf(t, "abc", "abc"))
	assert.Equal(t, []uint{4}, positionsOf(t, "b", "foo/bar"))
	assert.Equal(t, []uint{0, 4}, positionsOf(t, "ab", "a123b"))
}

func TestMatchPositions_SingleCharPrefersBoundary(t *testing.T) {
	// Both 'a's match; the one after '/' carries the higher bonus.
	assert.Equal(t, []uint{3}, positionsOf(t, "a", "xa/a"))
	// On a bonus tie the earliest position wins.
	assert.Equal(t, []uint{0}, positionsOf(t, "a", "aba"))
}

func TestMatchPositions_NoMatch(t *testing.T) {
	var pos bitset.BitSet
	assert.False(t, MatchPositions([]byte("x"), []byte("abc"), &pos))
	assert.Zero(t, pos.Count())
}

func TestMatchPositions_EmptyQuery(t *testing.T) {
	var pos bitset.BitSet
	assert.True(t, MatchPositions(nil, []byte("abc"), &pos))
	assert.Zero(t, pos.Count())
}

func TestMatchPositions_ClearsPreviousState(t *testing.T) {
	var pos bitset.BitSet
	require.True(t, MatchPositions([]byte("abc"), []byte("abc"), &pos))
	require.True(t, MatchPositions([]byte("b"), []byte("abc"), &pos))
	assert.Equal(t, uint(1), pos.Count())
}

// For every matched pair, the mask has exactly len(query) bits, at
// positions whose folded bytes spell the folded query in order.
func TestMatchPositions_RoundTrip(t *testing.T) {
	pairs := []struct{ query, item string }{
		{"fb", "FooBar"},
		{"fzb", "src/fuzz/buffer_pool.go"},
		{"main", "src/main.go"},
		{"ab", "aXb"},
		{"abc", "aabbcc"},
		{"aaa", "aaaa"},
		{"rdme", "README.md"},
	}

	var pos bitset.BitSet
	for _, p := range pairs {
		require.NotEqual(t, ScoreMin, Score([]byte(p.query), []byte(p.item)), "%+v must match", p)
		require.True(t, MatchPositions([]byte(p.query), []byte(p.item), &pos), "%+v", p)
		require.Equal(t, uint(len(p.query)), pos.Count(), "%+v", p)

		k := 0
		for i, ok := pos.NextSet(0); ok; i, ok = pos.NextSet(i + 1) {
			require.Equal(t, fold(p.query[k]), fold(p.item[i]), "%+v bit %d", p, i)
			k++
		}
	}
}
