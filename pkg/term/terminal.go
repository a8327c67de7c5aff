package term

import (
	"errors"
	"os"
	"slices"
	"sync"

	xterm "golang.org/x/term"

	"github.com/rawterm/rawterm/pkg/sys"
)

// Terminal owns the mode of one terminal. Raw mode is entered with
// EnterRawMode and left by releasing the returned RawScreen; nested guards
// form a stack.
//
// A Terminal is not safe for concurrent use.
type Terminal struct {
	in, out *os.File
	modes   modeSwitcher
	guards  []*RawScreen
}

// Saves, changes and restores the mode of a terminal. The saved state is
// opaque to Terminal.
type modeSwitcher interface {
	snapshot() (any, error)
	enterRaw(saved any) error
	restore(saved any) error
}

// NewTerminal creates a Terminal reading from in and writing to out. It
// returns a *CapabilityError wrapping ErrNotTerminal if in is not a terminal.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	if !sys.IsATTY(in.Fd()) {
		return nil, &CapabilityError{"raw mode", ErrNotTerminal}
	}
	return &Terminal{in: in, out: out, modes: newModeSwitcher(in, out)}, nil
}

// RawScreen is a guard for raw mode. Releasing it restores the mode that was
// in effect when it was created.
type RawScreen struct {
	t     *Terminal
	saved any
	once  sync.Once
}

// EnterRawMode snapshots the current terminal mode, switches the terminal to
// raw mode and returns a guard that restores the snapshot. Guards should be
// released in the reverse order of creation.
//
// If raw mode is entered but an optional capability is not available (such as
// virtual terminal output on old Windows consoles), both the guard and a
// *CapabilityError are returned.
func (t *Terminal) EnterRawMode() (*RawScreen, error) {
	saved, err := t.modes.snapshot()
	if err != nil {
		return nil, err
	}
	g := &RawScreen{t: t, saved: saved}
	err = t.modes.enterRaw(saved)
	var capErr *CapabilityError
	if err != nil && !errors.As(err, &capErr) {
		if err := t.modes.restore(saved); err != nil {
			logger.Println("restoring terminal mode after failed switch:", err)
		}
		return nil, err
	}
	t.guards = append(t.guards, g)
	return g, err
}

// Release restores the terminal mode captured by the guard. Only the first
// call has any effect. Failure to restore is logged and otherwise ignored.
func (g *RawScreen) Release() {
	g.once.Do(func() { g.t.release(g) })
}

func (t *Terminal) release(g *RawScreen) {
	i := slices.Index(t.guards, g)
	if i == -1 {
		return
	}
	if i != len(t.guards)-1 {
		// A programming error. Restore this guard's own snapshot anyway and
		// leave the other guards alone.
		logger.Printf("raw screen released out of order: guard %d of %d", i+1, len(t.guards))
	}
	if err := t.modes.restore(g.saved); err != nil {
		logger.Println("restoring terminal mode:", err)
	}
	t.guards = slices.Delete(t.guards, i, i+1)
}

// Depth returns the number of unreleased RawScreen guards.
func (t *Terminal) Depth() int { return len(t.guards) }

// Size returns the size of the terminal.
func (t *Terminal) Size() (cols, rows int, err error) {
	cols, rows, err = xterm.GetSize(int(t.out.Fd()))
	if err != nil {
		// The output may be redirected.
		if c, r, inErr := xterm.GetSize(int(t.in.Fd())); inErr == nil {
			return c, r, nil
		}
	}
	return cols, rows, err
}

// NewReader creates a Reader on the terminal's input.
func (t *Terminal) NewReader(cfg *Config) (Reader, error) {
	return NewReader(t.in, cfg)
}

// NewQueue creates a command Queue that writes to the terminal's output.
func (t *Terminal) NewQueue() *Queue {
	return NewQueue(t.out)
}
