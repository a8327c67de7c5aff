//go:build windows

package ewindows

// Values of the EventType field of InputRecord.
//
// https://docs.microsoft.com/en-us/windows/console/input-record-str
const (
	KEY_EVENT                = 0x0001
	MOUSE_EVENT              = 0x0002
	WINDOW_BUFFER_SIZE_EVENT = 0x0004
	MENU_EVENT               = 0x0008
	FOCUS_EVENT              = 0x0010
)

// InputRecord is the INPUT_RECORD structure. The Event field holds one of the
// *Event structures below, depending on EventType.
type InputRecord struct {
	EventType uint16
	_         [2]byte
	Event     [16]byte
}

// Coord is the COORD structure.
type Coord struct {
	X, Y int16
}

// KeyEvent is the KEY_EVENT_RECORD structure.
type KeyEvent struct {
	BKeyDown          int32
	WRepeatCount      uint16
	WVirtualKeyCode   uint16
	WVirtualScanCode  uint16
	UChar             [2]byte
	DwControlKeyState uint32
}

// Values of MouseEvent.DwButtonState. The high word of DwButtonState carries
// the signed wheel delta when MOUSE_WHEELED is set in DwEventFlags.
const (
	FROM_LEFT_1ST_BUTTON_PRESSED = 0x0001
	RIGHTMOST_BUTTON_PRESSED     = 0x0002
	FROM_LEFT_2ND_BUTTON_PRESSED = 0x0004
)

// Values of MouseEvent.DwEventFlags.
const (
	MOUSE_MOVED    = 0x0001
	DOUBLE_CLICK   = 0x0002
	MOUSE_WHEELED  = 0x0004
	MOUSE_HWHEELED = 0x0008
)

// MouseEvent is the MOUSE_EVENT_RECORD structure.
type MouseEvent struct {
	DwMousePosition   Coord
	DwButtonState     uint32
	DwControlKeyState uint32
	DwEventFlags      uint32
}

// WindowBufferSizeEvent is the WINDOW_BUFFER_SIZE_RECORD structure.
type WindowBufferSizeEvent struct {
	DwSize Coord
}
