//go:build windows

package term

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf16"

	"golang.org/x/sys/windows"

	"github.com/rawterm/rawterm/pkg/sys/ewindows"
	"github.com/rawterm/rawterm/pkg/ui"
)

type reader struct {
	console windows.Handle
	waker   *Waker
	// Held during ReadEvent, Poll and Close.
	mutex  sync.Mutex
	closed bool
	// Set by Close before it waits for the mutex.
	closing atomic.Bool

	pending []Event
	// Leading half of a surrogate pair, or 0.
	leadingSurrogate rune
	// Mouse button state of the last mouse record.
	buttons uint32
}

func newReader(f *os.File, cfg *Config) (Reader, error) {
	console := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(console, &mode); err != nil {
		return nil, &CapabilityError{"console input", err}
	}
	waker, err := NewWaker()
	if err != nil {
		return nil, err
	}
	return &reader{console: console, waker: waker}, nil
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
	// Callers that retry after the wake see closing and stop.
	r.closing.Store(true)
	r.waker.Wake()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.waker.Close()
}

// Waits until there is at least one pending event, and reports whether there
// is. It returns false with a nil error if timeout elapses first; a negative
// timeout means no timeout.
func (r *reader) fill(timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	handles := []windows.Handle{r.console, r.waker.handle()}
	for len(r.pending) == 0 {
		wait := uint32(ewindows.INFINITE)
		if timeout >= 0 {
			wait = ewindows.Milliseconds(max(time.Until(deadline), 0))
		}
		triggered, err := ewindows.WaitForMultipleObjects(handles, false, wait)
		if err != nil {
			return false, err
		}
		switch triggered {
		case -1:
			return false, nil
		case 1:
			if r.closing.Load() {
				return false, ErrClosed
			}
			r.waker.reset()
			return false, ErrCancelled
		}

		var buf [1]ewindows.InputRecord
		nr, err := ewindows.ReadConsoleInput(r.console, buf[:])
		if err != nil {
			return false, err
		}
		if nr == 0 {
			return false, io.ErrNoProgress
		}
		if ev := r.convert(buf[0].GetEvent()); ev != nil {
			r.pending = append(r.pending, ev)
		}
		// Got a record that should be ignored; keep going.
	}
	return true, nil
}

// Converts one input record, keeping state that spans records. It returns nil
// if the record should be ignored.
func (r *reader) convert(event ewindows.InputEvent) Event {
	switch event := event.(type) {
	case *ewindows.KeyEvent:
		ev := convertKeyEvent(event)
		if surrogate, ok := ev.(surrogateKeyEvent); ok {
			if r.leadingSurrogate == 0 {
				r.leadingSurrogate = surrogate.r
				// Keep reading the trailing surrogate.
				return nil
			}
			lead := r.leadingSurrogate
			r.leadingSurrogate = 0
			return K(utf16.DecodeRune(lead, surrogate.r))
		}
		if ev != nil {
			r.leadingSurrogate = 0
		}
		return ev
	case *ewindows.MouseEvent:
		prev := r.buttons
		r.buttons = event.DwButtonState & mouseButtonMask
		return convertMouseEvent(event, prev, consoleWindowTop())
	case *ewindows.WindowBufferSizeEvent:
		cols, rows := consoleWindowSize()
		if cols <= 0 || rows <= 0 {
			cols, rows = int(event.DwSize.X), int(event.DwSize.Y)
		}
		return ResizeEvent{Cols: cols, Rows: rows}
	default:
		// Menu and focus records are ignored.
		return nil
	}
}

// A subset of virtual key codes listed in
// https://msdn.microsoft.com/en-us/library/windows/desktop/dd375731(v=vs.85).aspx
var keyCodeToRune = map[uint16]rune{
	0x08: ui.Backspace, 0x09: ui.Tab,
	0x0d: ui.Enter,
	0x1b: ui.Esc,
	0x20: ' ',
	0x21: ui.PageUp, 0x22: ui.PageDown,
	0x23: ui.End, 0x24: ui.Home,
	0x25: ui.Left, 0x26: ui.Up, 0x27: ui.Right, 0x28: ui.Down,
	0x2d: ui.Insert, 0x2e: ui.Delete,
	/* 0x30 - 0x39: digits, same with ASCII */
	/* 0x41 - 0x5a: letters, same with ASCII */
	/* 0x60 - 0x6f: numpads; currently ignored */
	/* 0x70 - 0x87: F1 - F24; see convertRune */
	0xba: ';', 0xbb: '=', 0xbc: ',', 0xbd: '-', 0xbe: '.', 0xbf: '/', 0xc0: '`',
	0xdb: '[', 0xdc: '\\', 0xdd: ']', 0xde: '\'',
}

// A subset of constants listed in
// https://docs.microsoft.com/en-us/windows/console/key-event-record-str
const (
	leftAlt   = 0x02
	leftCtrl  = 0x08
	rightAlt  = 0x01
	rightCtrl = 0x04
	shift     = 0x10

	modMask = leftAlt | leftCtrl | rightAlt | rightCtrl | shift
)

type surrogateKeyEvent struct{ r rune }

func (surrogateKeyEvent) isEvent() {}

// Converts a key record to a KeyEvent, or a surrogateKeyEvent for half of a
// surrogate pair. It returns nil if the record should be ignored.
func convertKeyEvent(event *ewindows.KeyEvent) Event {
	if event.BKeyDown == 0 {
		// Ignore keyup events.
		return nil
	}
	r := rune(event.UChar[0]) + rune(event.UChar[1])<<8
	filteredMod := event.DwControlKeyState & modMask
	if r >= 0x20 && r != 0x7f {
		// This key inputs a character. The flags present in
		// DwControlKeyState might indicate modifier keys that are needed to
		// input this character (e.g. the Shift key when inputting 'A'), or
		// modifier keys that are pressed in addition (e.g. the Alt key when
		// pressing Alt-A). There doesn't seem to be an easy way to tell
		// which is the case, so we rely on heuristics derived from
		// real-world observations.
		if filteredMod == 0 {
			if utf16.IsSurrogate(r) {
				return surrogateKeyEvent{r}
			}
			return K(r)
		} else if filteredMod == shift {
			// A lone Shift seems to be always part of the character.
			return K(r)
		} else if filteredMod == leftCtrl|rightAlt || filteredMod == leftCtrl|rightAlt|shift {
			// The combination leftCtrl|rightAlt is used to represent AltGr.
			// Furthermore, when the actual left Ctrl and right Alt are used
			// together, the UChar field seems to be always 0; so if we are
			// here, we can actually be sure that it's AltGr.
			//
			// Some characters require AltGr+Shift to input, such as the
			// upper-case sharp S on a German keyboard.
			return K(r)
		}
	}
	mod := convertMod(filteredMod)
	code := convertRune(event.WVirtualKeyCode)
	if code == 0 {
		return nil
	}
	if code == ui.Tab && mod&ui.Shift != 0 {
		code, mod = ui.BackTab, mod&^ui.Shift
	}
	return K(code, mod)
}

func convertRune(keyCode uint16) rune {
	if r, ok := keyCodeToRune[keyCode]; ok {
		return r
	}
	switch {
	case '0' <= keyCode && keyCode <= '9':
		return rune(keyCode)
	case 'A' <= keyCode && keyCode <= 'Z':
		// Letters are reported in lower case, like the Ctrl keys read from
		// Unix terminals.
		return rune(keyCode - 'A' + 'a')
	case 0x70 <= keyCode && keyCode <= 0x87:
		return ui.F(int(keyCode-0x70) + 1)
	}
	return 0
}

func convertMod(state uint32) ui.Mod {
	mod := ui.Mod(0)
	if state&(leftAlt|rightAlt) != 0 {
		mod |= ui.Alt
	}
	if state&(leftCtrl|rightCtrl) != 0 {
		mod |= ui.Ctrl
	}
	if state&shift != 0 {
		mod |= ui.Shift
	}
	return mod
}

const mouseButtonMask = ewindows.FROM_LEFT_1ST_BUTTON_PRESSED |
	ewindows.RIGHTMOST_BUTTON_PRESSED | ewindows.FROM_LEFT_2ND_BUTTON_PRESSED

var mouseButtons = []struct {
	bit    uint32
	button MouseButton
}{
	{ewindows.FROM_LEFT_1ST_BUTTON_PRESSED, MouseLeft},
	{ewindows.RIGHTMOST_BUTTON_PRESSED, MouseRight},
	{ewindows.FROM_LEFT_2ND_BUTTON_PRESSED, MouseMiddle},
}

// Converts a mouse record. The console reports the state of all buttons, so
// presses and releases are found by comparing with the previous state. top is
// the row of the screen buffer shown at the top of the window. It returns nil
// if the record should be ignored.
func convertMouseEvent(event *ewindows.MouseEvent, prevButtons uint32, top int) Event {
	ev := MouseEvent{
		Col: max(int(event.DwMousePosition.X), 0),
		Row: max(int(event.DwMousePosition.Y)-top, 0),
		Mod: convertMod(event.DwControlKeyState & modMask),
	}
	buttons := event.DwButtonState & mouseButtonMask
	switch {
	case event.DwEventFlags&ewindows.MOUSE_WHEELED != 0:
		// The high word is the signed wheel delta.
		if int16(event.DwButtonState>>16) > 0 {
			ev.Kind = MouseScrollUp
		} else {
			ev.Kind = MouseScrollDown
		}
		return ev
	case event.DwEventFlags&ewindows.MOUSE_HWHEELED != 0:
		// Horizontal scrolling has no event kind.
		return nil
	case event.DwEventFlags&ewindows.MOUSE_MOVED != 0:
		ev.Kind = MouseMove
		for _, b := range mouseButtons {
			if buttons&b.bit != 0 {
				ev.Kind, ev.Button = MouseDrag, b.button
				break
			}
		}
		return ev
	}
	changed := buttons ^ prevButtons
	for _, b := range mouseButtons {
		if changed&b.bit != 0 {
			ev.Button = b.button
			if buttons&b.bit != 0 {
				ev.Kind = MouseDown
			} else {
				ev.Kind = MouseUp
			}
			return ev
		}
	}
	return nil
}

// Returns the visible window of the console screen buffer.
func consoleWindow() (windows.SmallRect, bool) {
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return windows.SmallRect{}, false
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(out, &info); err != nil {
		return windows.SmallRect{}, false
	}
	return info.Window, true
}

func consoleWindowTop() int {
	w, _ := consoleWindow()
	return int(w.Top)
}

func consoleWindowSize() (cols, rows int) {
	w, ok := consoleWindow()
	if !ok {
		return -1, -1
	}
	return int(w.Right-w.Left) + 1, int(w.Bottom-w.Top) + 1
}
