//go:build !linux && !windows

package notify

import (
	"encoding/binary"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

type pipeFd struct {
	r, w    int
	pending atomic.Bool
}

// New creates a pipe-backed Notifier.
func New() (Notifier, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	for _, fd := range fds {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return nil, err
		}
	}
	return &pipeFd{r: fds[0], w: fds[1]}, nil
}

func (p *pipeFd) Fire() error {
	// One write per edge; the flag keeps the pipe from filling up when the
	// reader is slow to drain.
	if !p.pending.CompareAndSwap(false, true) {
		return nil
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(p.w, buf[:])
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return nil
		default:
			return err
		}
	}
}

func (p *pipeFd) Drain() error {
	// Clear the flag before reading: a Fire that slips in after the clear
	// writes a fresh byte, so at worst the reader sees a spurious wake,
	// never a missed one.
	p.pending.Store(false)
	var buf [8]byte
	for {
		_, err := unix.Read(p.r, buf[:])
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return nil
		case nil:
			continue
		default:
			return err
		}
	}
}

func (p *pipeFd) Fd() int {
	return p.r
}

func (p *pipeFd) Close() error {
	_ = p.Fire()
	err := unix.Close(p.w)
	if cerr := unix.Close(p.r); err == nil {
		err = cerr
	}
	return err
}
