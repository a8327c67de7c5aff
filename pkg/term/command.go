package term

import (
	"fmt"
)

// Command is an instruction that changes the state of the terminal screen. It
// is implemented by the types in this file; commands are plain data and are
// turned into escape sequences by Encode.
type Command interface {
	isCommand()
}

// MoveTo moves the cursor to column X and row Y, both 0-based.
type MoveTo struct {
	X, Y int
}

// Hide hides the cursor.
type Hide struct{}

// Show shows the cursor.
type Show struct{}

// EnterAlternateScreen switches to the alternate screen buffer.
type EnterAlternateScreen struct{}

// LeaveAlternateScreen switches back to the main screen buffer.
type LeaveAlternateScreen struct{}

// Output writes text at the cursor as is.
type Output string

// ClearType specifies which part of the screen Clear erases.
type ClearType int

// Possible values of ClearType.
const (
	ClearAll ClearType = iota
	ClearFromCursorDown
	ClearFromCursorUp
	ClearCurrentLine
	ClearUntilNewLine
)

// Clear erases part of the screen.
type Clear struct {
	Type ClearType
}

// EnableMouseCapture makes the terminal report mouse events.
type EnableMouseCapture struct{}

// DisableMouseCapture stops the terminal from reporting mouse events.
type DisableMouseCapture struct{}

// SavePosition saves the cursor position.
type SavePosition struct{}

// RestorePosition moves the cursor to the position last saved with
// SavePosition.
type RestorePosition struct{}

func (MoveTo) isCommand()               {}
func (Hide) isCommand()                 {}
func (Show) isCommand()                 {}
func (EnterAlternateScreen) isCommand() {}
func (LeaveAlternateScreen) isCommand() {}
func (Output) isCommand()               {}
func (Clear) isCommand()                {}
func (EnableMouseCapture) isCommand()   {}
func (DisableMouseCapture) isCommand()  {}
func (SavePosition) isCommand()         {}
func (RestorePosition) isCommand()      {}

var clearSeqs = [...]string{
	ClearAll:            "\033[2J",
	ClearFromCursorDown: "\033[J",
	ClearFromCursorUp:   "\033[1J",
	ClearCurrentLine:    "\033[2K",
	ClearUntilNewLine:   "\033[K",
}

const (
	// Normal tracking, button-event tracking, urxvt and SGR encodings.
	enableMouseCapture  = "\033[?1000h\033[?1002h\033[?1015h\033[?1006h"
	disableMouseCapture = "\033[?1006l\033[?1015l\033[?1002l\033[?1000l"
)

// Encode returns the escape sequence (or text) that carries out cmd.
func Encode(cmd Command) string {
	switch cmd := cmd.(type) {
	case MoveTo:
		return fmt.Sprintf("\033[%d;%dH", max(cmd.Y, 0)+1, max(cmd.X, 0)+1)
	case Hide:
		return "\033[?25l"
	case Show:
		return "\033[?25h"
	case EnterAlternateScreen:
		return "\033[?1049h"
	case LeaveAlternateScreen:
		return "\033[?1049l"
	case Output:
		return string(cmd)
	case Clear:
		if 0 <= cmd.Type && int(cmd.Type) < len(clearSeqs) {
			return clearSeqs[cmd.Type]
		}
		panic(fmt.Sprintf("bad clear type %d", int(cmd.Type)))
	case EnableMouseCapture:
		return enableMouseCapture
	case DisableMouseCapture:
		return disableMouseCapture
	case SavePosition:
		return "\0337"
	case RestorePosition:
		return "\0338"
	default:
		panic(fmt.Sprintf("unknown command %T", cmd))
	}
}
