//go:build windows

package ewindows

import (
	"time"

	"golang.org/x/sys/windows"
)

// INFINITE is the timeout value that makes waits never time out.
const INFINITE = windows.INFINITE

// WaitForMultipleObjects waits until any of the handles is signaled, or the
// timeout in milliseconds elapses. It returns the index of the signaled handle,
// or -1 if the wait timed out.
func WaitForMultipleObjects(handles []windows.Handle, waitAll bool, timeout uint32) (int, error) {
	ret, err := windows.WaitForMultipleObjects(handles, waitAll, timeout)
	if err != nil {
		return -1, err
	}
	switch {
	case ret == uint32(windows.WAIT_TIMEOUT):
		return -1, nil
	case ret < windows.WAIT_OBJECT_0+uint32(len(handles)):
		return int(ret - windows.WAIT_OBJECT_0), nil
	case windows.WAIT_ABANDONED <= ret && ret < windows.WAIT_ABANDONED+uint32(len(handles)):
		return int(ret - windows.WAIT_ABANDONED), nil
	default:
		return -1, windows.GetLastError()
	}
}

// Milliseconds converts a timeout to the form accepted by
// WaitForMultipleObjects. A negative timeout means INFINITE.
func Milliseconds(timeout time.Duration) uint32 {
	if timeout < 0 {
		return INFINITE
	}
	ms := (timeout + time.Millisecond - 1) / time.Millisecond
	if ms >= time.Duration(INFINITE) {
		return INFINITE - 1
	}
	return uint32(ms)
}
