//go:build windows

package term

import (
	"sync"

	"golang.org/x/sys/windows"
)

// Waker interrupts a blocked read on a Reader from another goroutine.
//
// On Windows it is an auto-reset event object waited on together with the
// console input handle.
type Waker struct {
	mutex  sync.Mutex
	event  windows.Handle
	closed bool
}

// NewWaker creates a new Waker.
func NewWaker() (*Waker, error) {
	event, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	return &Waker{event: event}, nil
}

// Wake makes the current or next read of the associated Reader return
// ErrCancelled. It never blocks. Wakes issued before the reader observes them
// collapse into one. Calling Wake after Close does nothing.
func (wk *Waker) Wake() {
	wk.mutex.Lock()
	defer wk.mutex.Unlock()
	if wk.closed {
		return
	}
	if err := windows.SetEvent(wk.event); err != nil {
		logger.Println("SetEvent:", err)
	}
}

// Close releases the event object. It is safe to call more than once.
func (wk *Waker) Close() error {
	wk.mutex.Lock()
	defer wk.mutex.Unlock()
	if wk.closed {
		return nil
	}
	wk.closed = true
	return windows.CloseHandle(wk.event)
}

// The handle to wait on.
func (wk *Waker) handle() windows.Handle { return wk.event }

// The event resets itself when a wait observes it.
func (wk *Waker) reset() {}
