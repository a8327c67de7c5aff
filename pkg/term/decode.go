package term

import (
	"unicode/utf8"

	"github.com/rawterm/rawterm/pkg/ui"
)

// Returned by parseEvent when the buffer ends in the middle of a sequence and
// more input may complete it.
type incompleteError struct{}

func (incompleteError) Error() string { return "incomplete sequence" }

var errIncomplete incompleteError

// decoder turns bytes read from a terminal into events. Bytes that do not yet
// form a complete event stay buffered until more input arrives or the caller
// decides that no more input is coming.
type decoder struct {
	buf []byte
}

func (d *decoder) feed(p []byte) {
	if len(d.buf) == 0 {
		// Reuse the backing array once everything has been consumed.
		d.buf = append(d.buf[:0:cap(d.buf)], p...)
		return
	}
	d.buf = append(d.buf, p...)
}

// Reports whether there are undecoded bytes.
func (d *decoder) pending() bool { return len(d.buf) > 0 }

// next decodes one event from the start of the buffer. If more is true, a
// sequence that is cut short is left in the buffer for a later call;
// otherwise it is resolved to its best single-key interpretation. Malformed
// sequences are logged and dropped.
func (d *decoder) next(more bool) (Event, bool) {
	for len(d.buf) > 0 {
		ev, n, err := parseEvent(d.buf, more)
		if err == errIncomplete {
			return nil, false
		}
		d.buf = d.buf[n:]
		if err != nil {
			logger.Println("dropping malformed input:", err)
			continue
		}
		return ev, true
	}
	return nil, false
}

// parseEvent parses one event from the start of b, which must be non-empty.
// It returns the event and the number of bytes it occupies. On errIncomplete
// no bytes are consumed; on a seqError the returned number of bytes should be
// discarded.
func parseEvent(b []byte, more bool) (Event, int, error) {
	if b[0] == 0x1b {
		return parseEscape(b, more)
	}
	r, n, err := parseRune(b, more)
	if err != nil {
		return nil, n, err
	}
	return KeyEvent(ctrlModify(r)), n, nil
}

// Decodes one UTF-8 encoded rune from the start of b.
func parseRune(b []byte, more bool) (rune, int, error) {
	if !utf8.FullRune(b) {
		if more {
			return 0, 0, errIncomplete
		}
		return 0, len(b), seqError{"incomplete UTF-8 sequence", string(b)}
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n == 1 {
		return 0, 1, seqError{"invalid UTF-8 sequence", string(b[:1])}
	}
	return r, n, nil
}

// Parses a sequence starting with ESC.
func parseEscape(b []byte, more bool) (Event, int, error) {
	if len(b) == 1 {
		if more {
			return nil, 0, errIncomplete
		}
		// Nothing follows. Taken as a lone Escape.
		return K(ui.Esc), 1, nil
	}
	switch b[1] {
	case 0x1b:
		// According to https://unix.stackexchange.com/a/73697, rxvt and
		// derivatives prepend another ESC to a CSI-style or G3-style sequence
		// to signal Alt.
		if len(b) == 2 {
			if more {
				return nil, 0, errIncomplete
			}
			return K(ui.Esc, ui.Alt), 2, nil
		}
		if b[2] != '[' && b[2] != 'O' {
			return K(ui.Esc, ui.Alt), 2, nil
		}
		ev, n, err := parseEscape(b[1:], more)
		if err != nil {
			if err == errIncomplete {
				return nil, 0, err
			}
			return nil, n + 1, err
		}
		if k, ok := ev.(KeyEvent); ok {
			k.Mod |= ui.Alt
			ev = k
		}
		return ev, n + 1, nil
	case '[':
		return parseCSI(b, more)
	case 'O':
		// G3 style function key sequence: read one byte.
		if len(b) == 2 {
			if more {
				return nil, 0, errIncomplete
			}
			// Nothing follows after 'O'. Taken as Alt-O.
			return K('O', ui.Alt), 2, nil
		}
		if k, ok := g3Seq[rune(b[2])]; ok {
			return KeyEvent(k), 3, nil
		}
		return nil, 3, seqError{"bad G3", string(b[:3])}
	default:
		// Something other than '[' or 'O' follows. Taken as an Alt-modified
		// key, possibly also modified by Ctrl.
		r, n, err := parseRune(b[1:], more)
		if err != nil {
			if err == errIncomplete {
				return nil, 0, err
			}
			return nil, n + 1, err
		}
		k := ctrlModify(r)
		k.Mod |= ui.Alt
		return KeyEvent(k), n + 1, nil
	}
}

// Parses a CSI sequence; b starts with ESC [.
func parseCSI(b []byte, more bool) (Event, int, error) {
	incomplete := func(msg string) (Event, int, error) {
		if more {
			return nil, 0, errIncomplete
		}
		return nil, len(b), seqError{msg, string(b)}
	}

	i := 2
	if i == len(b) {
		if more {
			return nil, 0, errIncomplete
		}
		// Nothing follows after '['. Taken as Alt-[.
		return K('[', ui.Alt), 2, nil
	}

	// Read an optional starter.
	var starter byte
	switch b[i] {
	case '<':
		starter = '<'
		i++
	case 'M':
		// X10 mouse event: exactly three bytes follow.
		if len(b) < i+4 {
			return incomplete("incomplete mouse event")
		}
		ev, ok := decodeMouse(int(b[i+1])-32, int(b[i+2])-32-1, int(b[i+3])-32-1, false)
		if !ok {
			return nil, i + 4, seqError{"bad mouse event", string(b[:i+4])}
		}
		return ev, i + 4, nil
	}

	var nums []int
	// Set when a parameter byte other than a digit or ';' is seen, as in
	// device status reports and private-mode replies.
	private := false
	for ; i < len(b) && 0x30 <= b[i] && b[i] <= 0x3f; i++ {
		c := b[i]
		if c == ';' {
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums = append(nums, 0)
		} else if '0' <= c && c <= '9' {
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			cur := len(nums) - 1
			if nums[cur] < 1<<16 {
				nums[cur] = nums[cur]*10 + int(c-'0')
			}
		} else {
			private = true
		}
	}
	if i == len(b) {
		return incomplete("incomplete CSI")
	}
	last := b[i]
	if last < 0x20 || last > 0x7e {
		// Not a valid final byte; drop what was read so far and resynchronize
		// on this byte.
		return nil, i, seqError{"bad CSI", string(b[:i])}
	}
	seq := string(b[:i+1])
	n := i + 1
	if private {
		return nil, n, seqError{"unsupported CSI", seq}
	}

	switch {
	case starter == '<':
		// SGR-style mouse event.
		if (last != 'M' && last != 'm') || len(nums) != 3 {
			return nil, n, seqError{"bad SGR mouse event", seq}
		}
		ev, ok := decodeMouse(nums[0], nums[1]-1, nums[2]-1, last == 'm')
		if !ok {
			return nil, n, seqError{"bad SGR mouse event", seq}
		}
		return ev, n, nil
	case last == 'M' && len(nums) == 3:
		// rxvt-style mouse event.
		ev, ok := decodeMouse(nums[0]-32, nums[1]-1, nums[2]-1, false)
		if !ok {
			return nil, n, seqError{"bad rxvt mouse event", seq}
		}
		return ev, n, nil
	}
	k := parseCSIKey(nums, rune(last))
	if k == (ui.Key{}) {
		return nil, n, seqError{"bad CSI", seq}
	}
	return KeyEvent(k), n, nil
}

// Decodes the button byte of a mouse report, as used by the X10, rxvt and SGR
// encodings (after removing the offset of 32 where applicable). In the SGR
// encoding, release is reported by the final byte; in the others, by button
// number 3.
func decodeMouse(cb, col, row int, release bool) (Event, bool) {
	if cb < 0 {
		return nil, false
	}
	buttonNumber := (cb & 0b11) | ((cb & 0b1100_0000) >> 4)
	dragging := cb&0b10_0000 != 0
	ev := MouseEvent{Col: max(col, 0), Row: max(row, 0), Mod: mouseModify(cb)}

	switch {
	case buttonNumber <= 2:
		ev.Button = [...]MouseButton{MouseLeft, MouseMiddle, MouseRight}[buttonNumber]
		switch {
		case release:
			ev.Kind = MouseUp
		case dragging:
			ev.Kind = MouseDrag
		default:
			ev.Kind = MouseDown
		}
	case buttonNumber == 3:
		if dragging {
			ev.Kind = MouseMove
		} else {
			ev.Kind = MouseUp
		}
	case buttonNumber == 4 && !dragging:
		ev.Kind = MouseScrollUp
	case buttonNumber == 5 && !dragging:
		ev.Kind = MouseScrollDown
	case dragging:
		ev.Kind = MouseMove
	default:
		return nil, false
	}
	return ev, true
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns the
// ui.Key the rune represents.
func ctrlModify(r rune) ui.Key {
	switch r {
	case 0x0:
		return ui.K(ui.Null)
	case '\r', '\n':
		return ui.K(ui.Enter)
	case '\t':
		return ui.K(ui.Tab)
	case 0x7f, 0x08:
		return ui.K(ui.Backspace)
	case 0x1b:
		return ui.K(ui.Esc)
	}
	switch {
	case 0x1 <= r && r <= 0x1a:
		return ui.K('a'+r-0x1, ui.Ctrl)
	case 0x1c <= r && r <= 0x1f:
		return ui.K('4'+r-0x1c, ui.Ctrl)
	}
	return ui.K(r)
}

// Tables for key sequences. Comments document which terminal emulators are
// known to generate which sequences. The terminal emulators tested are
// categorized into xterm (including actual xterm, libvte-based terminals,
// Konsole and Terminal.app unless otherwise noted), urxvt, tmux.

// G3-style key sequences: \eO followed by exactly one character. For instance,
// \eOP is F1. These are pretty limited in that they cannot be extended to
// support modifier keys, other than a leading \e for Alt (e.g. \e\eOP is
// Alt-F1). Terminals that send G3-style key sequences typically switch to
// sending a CSI-style key sequence when a non-Alt modifier key is pressed.
var g3Seq = map[rune]ui.Key{
	// xterm, tmux -- only in Vim, depends on termios setting?
	// NOTE: According to urxvt's manpage, \eO[ABCD] sequences are used for
	// Ctrl-Shift-modified arrow keys; however, this doesn't seem to be true for
	// urxvt 9.22 packaged by Debian; those keys simply send the same sequence
	// as Ctrl-modified keys (\eO[abcd]).
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	// keypad Enter
	'M': ui.K(ui.Enter),
	// urxvt
	'a': ui.K(ui.Up, ui.Ctrl), 'b': ui.K(ui.Down, ui.Ctrl),
	'c': ui.K(ui.Right, ui.Ctrl), 'd': ui.K(ui.Left, ui.Ctrl),
	// xterm, urxvt, tmux
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// Tables for CSI-style key sequences. A CSI sequence is \e[ followed by zero or
// more numerical arguments (separated by semicolons), ending in a non-numeric,
// non-semicolon rune. They are used for many purposes, and CSI-style key
// sequences are a subset of them.
//
// There are several variants of CSI-style key sequences; see comments above the
// respective tables. In all variants, modifier keys are encoded in numerical
// arguments; see xtermModify. Note that although the set of possible sequences
// make it possible to express a very complete set of key combinations, they are
// not always sent by terminals. For instance, many (if not most) terminals will
// send the same sequence for Up when Shift-Up is pressed, even if Shift-Up is
// expressible using the escape sequences described below.

// CSI-style key sequences identified by the last rune. For instance, \e[A is
// Up. When modified, two numerical arguments are added, the first always being
// 1 and the second identifying the modifier. For instance, \e[1;5A is Ctrl-Up.
var csiSeqByLast = map[rune]ui.Key{
	// xterm, urxvt, tmux
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	// urxvt
	'a': ui.K(ui.Up, ui.Shift), 'b': ui.K(ui.Down, ui.Shift),
	'c': ui.K(ui.Right, ui.Shift), 'd': ui.K(ui.Left, ui.Shift),
	// xterm (Terminal.app only sends those in alternate screen)
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	// xterm, urxvt, tmux
	'Z': ui.K(ui.BackTab),
	// xterm, only when modified: \e[1;2P is Shift-F1
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// CSI-style key sequences ending with '~' with by one or two numerical
// arguments. The first argument identifies the key, and the optional second
// argument identifies the modifier. For instance, \e[3~ is Delete, and \e[3;5~
// is Ctrl-Delete.
//
// An alternative encoding of the modifier key, only known to be used by urxvt
// (or for that matter, likely also rxvt) is to change the last rune: '$' for
// Shift, '^' for Ctrl, and '@' for Ctrl+Shift. The numeric argument is kept
// unchanged. For instance, \e[3^ is Ctrl-Delete.
var csiSeqTilde = map[int]rune{
	// tmux (NOTE: urxvt uses the pair for Find/Select)
	1: ui.Home, 4: ui.End,
	// xterm (Terminal.app sends ^M for Fn+Enter), urxvt, tmux
	2: ui.Insert,
	// xterm, urxvt, tmux
	3: ui.Delete,
	// xterm (Terminal.app only sends those in alternate screen), urxvt, tmux
	// NOTE: called Prior/Next in urxvt manpage
	5: ui.PageUp, 6: ui.PageDown,
	// urxvt
	7: ui.Home, 8: ui.End,
	// urxvt
	11: ui.F1, 12: ui.F2, 13: ui.F3, 14: ui.F4,
	// xterm, urxvt, tmux
	// NOTE: 16 and 22 are unused
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
	// xterm
	25: ui.F(13), 26: ui.F(14), 28: ui.F(15), 29: ui.F(16),
	31: ui.F(17), 32: ui.F(18), 33: ui.F(19), 34: ui.F(20),
}

// CSI-style key sequences ending with '~', with the first argument always 27,
// the second argument identifying the modifier, and the third argument
// identifying the key. For instance, \e[27;5;9~ is Ctrl-Tab.
//
// NOTE: The list is taken blindly from xterm-keys.c in the tmux source
// tree. I do not have a keyboard-terminal combination that generate such
// sequences, but assumably they are generated by some terminals for numpad
// inputs.
var csiSeqTilde27 = map[int]rune{
	9: ui.Tab, 13: ui.Enter,
	33: '!', 35: '#', 39: '\'', 40: '(', 41: ')', 43: '+', 44: ',', 45: '-',
	46: '.',
	48: '0', 49: '1', 50: '2', 51: '3', 52: '4', 53: '5', 54: '6', 55: '7',
	56: '8', 57: '9',
	58: ':', 59: ';', 60: '<', 61: '=', 62: '>', 63: ';',
}

// parseCSIKey parses a CSI-style key sequence. See comments above for all the
// 3 variants this function handles. It returns the zero Key if the sequence is
// not a known key.
func parseCSIKey(nums []int, last rune) ui.Key {
	if k, ok := csiSeqByLast[last]; ok {
		if len(nums) == 0 {
			// Unmodified: \e[A (Up)
			return k
		} else if len(nums) == 2 && nums[0] == 1 {
			// Modified: \e[1;5A (Ctrl-Up)
			return xtermModify(k, nums[1])
		} else {
			return ui.Key{}
		}
	}

	switch last {
	case '~':
		if len(nums) == 1 || len(nums) == 2 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				k := ui.K(r)
				if len(nums) == 1 {
					// Unmodified: \e[5~ (e.g. PageUp)
					return k
				}
				// Modified: \e[5;5~ (e.g. Ctrl-PageUp)
				return xtermModify(k, nums[1])
			}
		} else if len(nums) == 3 && nums[0] == 27 {
			if r, ok := csiSeqTilde27[nums[2]]; ok {
				k := ui.K(r)
				return xtermModify(k, nums[1])
			}
		}
	case '$', '^', '@':
		// Modified by urxvt; see comment above csiSeqTilde.
		if len(nums) == 1 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				var mod ui.Mod
				switch last {
				case '$':
					mod = ui.Shift
				case '^':
					mod = ui.Ctrl
				case '@':
					mod = ui.Shift | ui.Ctrl
				}
				return ui.K(r, mod)
			}
		}
	}

	return ui.Key{}
}

func xtermModify(k ui.Key, mod int) ui.Key {
	if mod < 0 || mod > 16 {
		// Out of range
		return ui.Key{}
	}
	if mod == 0 {
		return k
	}
	modFlags := mod - 1
	if modFlags&0x1 != 0 {
		k.Mod |= ui.Shift
	}
	if modFlags&0x2 != 0 {
		k.Mod |= ui.Alt
	}
	if modFlags&0x4 != 0 {
		k.Mod |= ui.Ctrl
	}
	if modFlags&0x8 != 0 {
		// This should be Meta, but we currently conflate Meta and Alt.
		k.Mod |= ui.Alt
	}
	return k
}

func mouseModify(n int) ui.Mod {
	var mod ui.Mod
	if n&4 != 0 {
		mod |= ui.Shift
	}
	if n&8 != 0 {
		mod |= ui.Alt
	}
	if n&16 != 0 {
		mod |= ui.Ctrl
	}
	return mod
}
