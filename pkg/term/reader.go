package term

import (
	"os"
	"time"
)

// Reader reads events from a terminal.
//
// ReadEvent and Poll may be called from one goroutine at a time; Waker().Wake
// and Close may be called from any goroutine.
type Reader interface {
	// ReadEvent blocks until an event is available and returns it. It returns
	// ErrCancelled if the Waker fires while waiting, and an OS error verbatim
	// if the terminal cannot be read. Events that are already decoded are
	// returned before a pending wake is observed.
	ReadEvent() (Event, error)
	// Poll reports whether an event can be read without blocking, waiting up
	// to timeout for one to arrive. The event is not consumed. A negative
	// timeout waits forever. It returns ErrCancelled if the Waker fires while
	// waiting.
	Poll(timeout time.Duration) (bool, error)
	// Waker returns the Waker that interrupts this Reader. The Waker is owned
	// by the Reader and closed by Close.
	Waker() *Waker
	// Close releases resources associated with the Reader, aborting any
	// outstanding ReadEvent or Poll call. It does not close the terminal file.
	// A call interrupted by Close, and every call after it, returns
	// ErrClosed.
	Close() error
}

// NewReader creates a new Reader on the given terminal file. A nil cfg means
// DefaultConfig().
func NewReader(f *os.File, cfg *Config) (Reader, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newReader(f, cfg)
}
