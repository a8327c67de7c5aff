//go:build unix

package term

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/rawterm/rawterm/pkg/errutil"
	"github.com/rawterm/rawterm/pkg/sys"
	"github.com/rawterm/rawterm/pkg/sys/eunix"
)

// reader reads terminal input with poll(2), decoding escape sequences into
// events.
type reader struct {
	file  *os.File
	fd    int
	cfg   Config
	waker *Waker
	winch *winchNotifier

	// Held during ReadEvent, Poll and Close.
	mutex  sync.Mutex
	closed bool
	// Set by Close before it waits for the mutex. Calls that observe it give
	// up with ErrClosed.
	closing atomic.Bool

	readBuf []byte
	dec     decoder
	pending []Event
	// Number of consecutive waits of a full EscapeTimeout that timed out while
	// an incomplete sequence was buffered.
	stale int
}

func newReader(f *os.File, cfg *Config) (Reader, error) {
	waker, err := NewWaker()
	if err != nil {
		return nil, err
	}
	winch, err := newWinchNotifier()
	if err != nil {
		waker.Close()
		return nil, err
	}
	return &reader{
		file: f, fd: int(f.Fd()), cfg: *cfg, waker: waker, winch: winch,
		readBuf: make([]byte, cfg.ReadBufferSize)}, nil
}

func (r *reader) ReadEvent() (Event, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closing.Load() {
		return nil, ErrClosed
	}
	if _, err := r.fill(-1); err != nil {
		return nil, err
	}
	ev := r.pending[0]
	r.pending = r.pending[1:]
	return ev, nil
}

func (r *reader) Poll(timeout time.Duration) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closing.Load() {
		return false, ErrClosed
	}
	return r.fill(timeout)
}

func (r *reader) Waker() *Waker { return r.waker }

func (r *reader) Close() error {
	// Abort any outstanding call so that the mutex can be acquired. Callers
	// that retry after the wake see closing and stop.
	r.closing.Store(true)
	r.waker.Wake()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return errutil.Multi(r.winch.Close(), r.waker.Close())
}

// Waits until there is at least one pending event, and reports whether there
// is. It returns false with a nil error if timeout elapses first; a negative
// timeout means no timeout.
func (r *reader) fill(timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		r.decode()
		if len(r.pending) > 0 {
			return true, nil
		}

		wait := time.Duration(-1)
		if timeout >= 0 {
			wait = max(time.Until(deadline), 0)
		}
		// Only waits that last the full EscapeTimeout count towards resolving
		// an incomplete sequence; shorter ones are cut by the caller's timeout.
		fullWait := false
		if r.dec.pending() && (wait < 0 || wait >= r.cfg.EscapeTimeout) {
			wait, fullWait = r.cfg.EscapeTimeout, true
		}
		ready, err := eunix.WaitForRead(wait, r.fd, r.waker.fd(), r.winch.fd())
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return false, err
		}

		switch {
		case ready[1]:
			if r.closing.Load() {
				return false, ErrClosed
			}
			r.waker.reset()
			return false, ErrCancelled
		case ready[2]:
			r.winch.reset()
			if ev, ok := r.resizeEvent(); ok {
				r.pending = append(r.pending, ev)
			}
		case ready[0]:
			eof, err := r.readInput()
			if err != nil {
				return false, err
			}
			if eof {
				// No more input will complete a partial sequence.
				r.resolve()
				if len(r.pending) > 0 {
					return true, nil
				}
				return false, io.EOF
			}
		default:
			if r.dec.pending() && fullWait {
				r.stale++
				if r.stale >= r.cfg.MaxIncompletePolls {
					r.resolve()
				}
			}
			if len(r.pending) == 0 && timeout >= 0 && !time.Now().Before(deadline) {
				return false, nil
			}
		}
	}
}

// Moves all complete events from the decoder to the pending queue.
func (r *reader) decode() {
	for {
		ev, ok := r.dec.next(true)
		if !ok {
			return
		}
		r.pending = append(r.pending, ev)
	}
}

// Resolves the incomplete sequence at the start of the decode buffer.
func (r *reader) resolve() {
	r.stale = 0
	if ev, ok := r.dec.next(false); ok {
		r.pending = append(r.pending, ev)
	}
}

// Reads whatever is available into the decode buffer. It returns true when the
// terminal reports end of file.
func (r *reader) readInput() (bool, error) {
	for {
		n, err := unix.Read(r.fd, r.readBuf)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return false, nil
		case err != nil:
			return false, err
		case n == 0:
			return true, nil
		}
		r.stale = 0
		r.dec.feed(r.readBuf[:n])
		return false, nil
	}
}

func (r *reader) resizeEvent() (Event, bool) {
	rows, cols := sys.WinSize(r.file)
	if rows < 0 {
		logger.Println("got SIGWINCH, but cannot query terminal size")
		return nil, false
	}
	return ResizeEvent{Cols: cols, Rows: rows}, true
}

// winchNotifier turns SIGWINCH into readiness of a pipe, so that it can be
// waited on together with the terminal.
type winchNotifier struct {
	sigCh chan os.Signal
	r, w  int
	done  chan struct{}
}

func newWinchNotifier() (*winchNotifier, error) {
	r, w, err := eunix.NonblockPipe()
	if err != nil {
		return nil, err
	}
	n := &winchNotifier{make(chan os.Signal, 1), r, w, make(chan struct{})}
	signal.Notify(n.sigCh, sys.SIGWINCH)
	go func() {
		defer close(n.done)
		for range n.sigCh {
			_, err := unix.Write(n.w, []byte{0})
			if err != nil && err != unix.EAGAIN {
				logger.Println("forwarding SIGWINCH:", err)
			}
		}
	}()
	return n, nil
}

func (n *winchNotifier) fd() int { return n.r }

func (n *winchNotifier) reset() {
	if _, err := eunix.Drain(n.r); err != nil {
		logger.Println("draining SIGWINCH pipe:", err)
	}
}

func (n *winchNotifier) Close() error {
	signal.Stop(n.sigCh)
	close(n.sigCh)
	<-n.done
	return errutil.Multi(unix.Close(n.r), unix.Close(n.w))
}
