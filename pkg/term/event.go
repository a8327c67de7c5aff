package term

import (
	"fmt"

	"github.com/rawterm/rawterm/pkg/ui"
)

// Event represents a normalized input event read from the terminal. It is
// implemented by KeyEvent, MouseEvent and ResizeEvent.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(code rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(code, mods...))
}

func (ev KeyEvent) String() string { return ui.Key(ev).String() }

// MouseKind is the kind of a mouse event.
type MouseKind int

// Possible values of MouseKind.
const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

var mouseKindNames = [...]string{
	"Down", "Up", "Drag", "Move", "ScrollUp", "ScrollDown",
}

func (k MouseKind) String() string {
	if 0 <= k && int(k) < len(mouseKindNames) {
		return mouseKindNames[k]
	}
	return fmt.Sprintf("MouseKind(%d)", int(k))
}

// MouseButton identifies a mouse button.
type MouseButton int

// Possible values of MouseButton. MouseNoButton is used for scrolling, for
// motion with no button held, and for releases when the terminal does not
// report which button was released.
const (
	MouseNoButton MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

var mouseButtonNames = [...]string{"NoButton", "Left", "Middle", "Right"}

func (b MouseButton) String() string {
	if 0 <= b && int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", int(b))
}

// MouseEvent represents a mouse event. Col and Row are 0-based.
type MouseEvent struct {
	Kind   MouseKind
	Button MouseButton
	Col    int
	Row    int
	Mod    ui.Mod
}

// ResizeEvent reports the new size of the terminal.
type ResizeEvent struct {
	Cols int
	Rows int
}

func (KeyEvent) isEvent()    {}
func (MouseEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
