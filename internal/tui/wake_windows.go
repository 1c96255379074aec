//go:build windows

package tui

import "golang.org/x/sys/windows"

// waitWake blocks until the wake-up event object is signaled. It reports
// false when the handle is gone and polling should stop.
func waitWake(fd int) (bool, error) {
	ev, err := windows.WaitForSingleObject(windows.Handle(fd), windows.INFINITE)
	if err != nil {
		return false, nil
	}
	return ev == windows.WAIT_OBJECT_0, nil
}
