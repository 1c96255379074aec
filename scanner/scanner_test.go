package scanner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fuzzgo/scanner"
)

func collect(lines *[]string) scanner.PushFunc {
	return func(line []byte) error {
		*lines = append(*lines, string(line))
		return nil
	}
}

func TestLineScanner_Basic(t *testing.T) {
	var ls scanner.LineScanner
	var lines []string

	n, err := ls.Feed([]byte("one\ntwo\nthree"), collect(&lines))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)
	assert.Equal(t, []string{"one", "two"}, lines)

	pushed, err := ls.Finalize(collect(&lines))
	require.NoError(t, err)
	assert.True(t, pushed)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestLineScanner_PartialAcrossChunks(t *testing.T) {
	var ls scanner.LineScanner
	var lines []string

	for _, chunk := range []string{"ab", "c\nd", "ef\n"} {
		_, err := ls.Feed([]byte(chunk), collect(&lines))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"abc", "def"}, lines)

	pushed, err := ls.Finalize(collect(&lines))
	require.NoError(t, err)
	assert.False(t, pushed, "no trailing bytes to flush")
}

func TestLineScanner_CRLF(t *testing.T) {
	var ls scanner.LineScanner
	var lines []string

	_, err := ls.Feed([]byte("win\r\nunix\nbare\r"), collect(&lines))
	require.NoError(t, err)
	assert.Equal(t, []string{"win", "unix"}, lines)

	// A trailing bare \r is not a line terminator; it flushes verbatim.
	pushed, err := ls.Finalize(collect(&lines))
	require.NoError(t, err)
	assert.True(t, pushed)
	assert.Equal(t, []string{"win", "unix", "bare\r"}, lines)
}

func TestLineScanner_EmptyLines(t *testing.T) {
	var ls scanner.LineScanner
	var lines []string

	n, err := ls.Feed([]byte("\n\nx\n"), collect(&lines))
	require.NoError(t, err)
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, []string{"", "", "x"}, lines)
}

func TestLineScanner_PushErrorStopsFeed(t *testing.T) {
	var ls scanner.LineScanner
	errFull := errors.New("full")
	calls := 0

	n, err := ls.Feed([]byte("a\nb\nc\n"), func([]byte) error {
		calls++
		if calls == 2 {
			return errFull
		}
		return nil
	})
	require.ErrorIs(t, err, errFull)
	assert.Equal(t, uint32(1), n)
	assert.Equal(t, 2, calls)
}

func TestLineScanner_FinalizeEmpty(t *testing.T) {
	var ls scanner.LineScanner
	pushed, err := ls.Finalize(func([]byte) error { return nil })
	require.NoError(t, err)
	assert.False(t, pushed)
}
