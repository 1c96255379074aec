//go:build windows

package notify

import "golang.org/x/sys/windows"

// On Windows the notifier is a manual-reset event object. Fd returns the
// event handle; readers wait on it with WaitForSingleObject rather than
// poll, and Drain resets it in place of the 8-byte counter read.
type eventHandle struct {
	h windows.Handle
}

// New creates an event-object-backed Notifier.
func New() (Notifier, error) {
	h, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return nil, err
	}
	return &eventHandle{h: h}, nil
}

func (e *eventHandle) Fire() error {
	return windows.SetEvent(e.h)
}

func (e *eventHandle) Drain() error {
	return windows.ResetEvent(e.h)
}

func (e *eventHandle) Fd() int {
	return int(e.h)
}

func (e *eventHandle) Close() error {
	_ = windows.SetEvent(e.h)
	return windows.CloseHandle(e.h)
}
