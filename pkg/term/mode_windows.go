//go:build windows

package term

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/rawterm/rawterm/pkg/errutil"
)

const (
	inClear = windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT |
		windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_QUICK_EDIT_MODE
	inSet = windows.ENABLE_WINDOW_INPUT | windows.ENABLE_MOUSE_INPUT |
		windows.ENABLE_EXTENDED_FLAGS
	outSet = windows.ENABLE_PROCESSED_OUTPUT |
		windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
)

// Switches modes of the console input and output handles.
type consoleSwitcher struct {
	in, out windows.Handle
}

type consoleModes struct {
	in, out uint32
	// Whether the output is a console.
	hasOut bool
}

func newModeSwitcher(in, out *os.File) modeSwitcher {
	return consoleSwitcher{windows.Handle(in.Fd()), windows.Handle(out.Fd())}
}

func (s consoleSwitcher) snapshot() (any, error) {
	var modes consoleModes
	if err := windows.GetConsoleMode(s.in, &modes.in); err != nil {
		return nil, err
	}
	modes.hasOut = windows.GetConsoleMode(s.out, &modes.out) == nil
	return modes, nil
}

func (s consoleSwitcher) enterRaw(saved any) error {
	modes := saved.(consoleModes)
	if err := windows.SetConsoleMode(s.in, modes.in&^inClear|inSet); err != nil {
		return err
	}
	if !modes.hasOut {
		return &CapabilityError{"virtual terminal output", ErrNotTerminal}
	}
	if err := windows.SetConsoleMode(s.out, modes.out|outSet); err != nil {
		return &CapabilityError{"virtual terminal output", err}
	}
	return nil
}

func (s consoleSwitcher) restore(saved any) error {
	modes := saved.(consoleModes)
	var errOut error
	if modes.hasOut {
		errOut = windows.SetConsoleMode(s.out, modes.out)
	}
	return errutil.Multi(errOut, windows.SetConsoleMode(s.in, modes.in))
}
