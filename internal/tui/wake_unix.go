//go:build !windows

package tui

import "golang.org/x/sys/unix"

// waitWake blocks until the wake-up descriptor is readable. It reports
// false when the descriptor is gone and polling should stop.
func waitWake(fd int) (bool, error) {
	for {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		_, err := unix.Poll(fds, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return false, err
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL|unix.POLLHUP) != 0 {
			return false, nil
		}
		return true, nil
	}
}
