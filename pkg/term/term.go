// Package term is the terminal control layer: it puts the terminal into raw
// mode and back, reads normalized input events in a way that can be cancelled
// from another goroutine, and batches output commands for atomic delivery.
//
// The OS-specific parts are selected at build time: termios, poll(2) and
// self-pipes on Unix; console modes, console input records and event objects
// on Windows.
package term

import (
	"errors"
	"fmt"

	"github.com/rawterm/rawterm/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

// ErrCancelled is returned by Reader when its Waker fires during (or before) a
// ReadEvent or Poll call. It is not fatal; the next call reads normally.
var ErrCancelled = errors.New("read cancelled")

// ErrClosed is returned by Reader methods called after Close.
var ErrClosed = errors.New("reader closed")

// ErrNotTerminal is wrapped in a CapabilityError when raw mode is requested on
// a file that is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// CapabilityError reports that a feature is not available on the current
// platform or terminal. Only the named feature is unavailable; it is never
// fatal on its own.
type CapabilityError struct {
	Capability string
	Err        error
}

func (err *CapabilityError) Error() string {
	return fmt.Sprintf("%s unsupported: %v", err.Capability, err.Err)
}

func (err *CapabilityError) Unwrap() error { return err.Err }

// A malformed or undecodable input sequence. Such errors are logged and the
// offending bytes dropped; they are never returned to callers.
type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}
