//go:build linux

package notify

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

type eventFd struct {
	fd int
}

// New creates an eventfd-backed Notifier.
func New() (Notifier, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &eventFd{fd: fd}, nil
}

func (e *eventFd) Fire() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(e.fd, buf[:])
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			// Counter saturated; a wake is already pending.
			return nil
		default:
			return err
		}
	}
}

func (e *eventFd) Drain() error {
	var buf [8]byte
	for {
		_, err := unix.Read(e.fd, buf[:])
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			// Nothing pending; spurious wakes are fine.
			return nil
		default:
			return err
		}
	}
}

func (e *eventFd) Fd() int {
	return e.fd
}

func (e *eventFd) Close() error {
	_ = e.Fire()
	return unix.Close(e.fd)
}
