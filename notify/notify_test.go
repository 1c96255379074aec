//go:build !windows

package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/fuzzgo/notify"
)

func readable(t *testing.T, fd int) bool {
	t.Helper()
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	require.NoError(t, err)
	return n > 0 && fds[0].Revents&unix.POLLIN != 0
}

func TestNotifier_FireDrain(t *testing.T) {
	n, err := notify.New()
	require.NoError(t, err)
	defer n.Close()

	assert.False(t, readable(t, n.Fd()), "fresh notifier must not be readable")

	require.NoError(t, n.Fire())
	assert.True(t, readable(t, n.Fd()))

	// Idempotent between drains.
	require.NoError(t, n.Fire())
	require.NoError(t, n.Fire())
	assert.True(t, readable(t, n.Fd()))

	require.NoError(t, n.Drain())
	assert.False(t, readable(t, n.Fd()))

	// Drain with nothing pending is fine.
	require.NoError(t, n.Drain())
}

func TestNotifier_FireAfterDrain(t *testing.T) {
	n, err := notify.New()
	require.NoError(t, err)
	defer n.Close()

	require.NoError(t, n.Fire())
	require.NoError(t, n.Drain())

	require.NoError(t, n.Fire())
	assert.True(t, readable(t, n.Fd()), "edge after drain must wake again")
}

func TestNotifier_CloseFiresFinalWake(t *testing.T) {
	n, err := notify.New()
	require.NoError(t, err)

	fd := n.Fd()
	require.NoError(t, n.Close())

	// The descriptor is gone; a poller wakes up with an error condition
	// rather than blocking forever.
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	num, err := unix.Poll(fds, 0)
	if err == nil && num > 0 {
		assert.NotZero(t, fds[0].Revents)
	}
}
