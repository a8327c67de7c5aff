//go:build windows

package ewindows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var readConsoleInput = kernel32.NewProc("ReadConsoleInputW")

// ReadConsoleInput reads console input records into buf, blocking until at
// least one is available. It returns the number of records read.
//
// https://docs.microsoft.com/en-us/windows/console/readconsoleinput
func ReadConsoleInput(h windows.Handle, buf []InputRecord) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var nr uint32
	r, _, err := readConsoleInput.Call(uintptr(h),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), uintptr(unsafe.Pointer(&nr)))
	if r == 0 {
		return int(nr), err
	}
	return int(nr), nil
}

// InputEvent is one of *KeyEvent, *MouseEvent and *WindowBufferSizeEvent.
// Menu and focus records are only used internally by Windows and have no
// InputEvent.
type InputEvent interface {
	isInputEvent()
}

func (*KeyEvent) isInputEvent()              {}
func (*MouseEvent) isInputEvent()            {}
func (*WindowBufferSizeEvent) isInputEvent() {}

// GetEvent returns the event stored in the record, or nil for menu, focus and
// unknown records.
func (input *InputRecord) GetEvent() InputEvent {
	p := unsafe.Pointer(&input.Event)
	switch input.EventType {
	case KEY_EVENT:
		return (*KeyEvent)(p)
	case MOUSE_EVENT:
		return (*MouseEvent)(p)
	case WINDOW_BUFFER_SIZE_EVENT:
		return (*WindowBufferSizeEvent)(p)
	}
	return nil
}
