//go:build !windows

package fuzzgo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFinder_NotifyHandle(t *testing.T) {
	fz := newStarted(t)

	fd := fz.NotifyHandle()
	require.NoError(t, fz.PushItem([]byte("a")))
	fz.CommitItems()

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n, "publish must make the handle readable")

	assert.True(t, fz.LoadResults())
	assert.Equal(t, 1, fz.ResultsLen())
}
