//go:build unix

package term

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/rawterm/rawterm/pkg/errutil"
	"github.com/rawterm/rawterm/pkg/sys/eunix"
)

// Waker interrupts a blocked read on a Reader from another goroutine.
//
// On Unix it is a non-blocking self-pipe: the read end is watched together
// with the terminal, and Wake writes a byte to the write end.
type Waker struct {
	mutex  sync.Mutex
	r, w   int
	closed bool
}

// NewWaker creates a new Waker.
func NewWaker() (*Waker, error) {
	r, w, err := eunix.NonblockPipe()
	if err != nil {
		return nil, err
	}
	return &Waker{r: r, w: w}, nil
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
	for {
		_, err := unix.Write(wk.w, []byte{0})
		switch err {
		case nil:
			return
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			// The pipe is full, so a wake is already pending.
			return
		default:
			logger.Println("waking reader:", err)
			return
		}
	}
}

// Close releases the pipe. It is safe to call more than once.
func (wk *Waker) Close() error {
	wk.mutex.Lock()
	defer wk.mutex.Unlock()
	if wk.closed {
		return nil
	}
	wk.closed = true
	return errutil.Multi(unix.Close(wk.r), unix.Close(wk.w))
}

// The descriptor to wait on.
func (wk *Waker) fd() int { return wk.r }

// Consumes all pending wakes.
func (wk *Waker) reset() {
	if _, err := eunix.Drain(wk.r); err != nil {
		logger.Println("draining waker:", err)
	}
}
