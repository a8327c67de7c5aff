// Package ui contains types shared by the terminal input layer and its users.
package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key represents a single keyboard input, typically assembled from an escape
// sequence or a console input record.
//
// A non-negative Code is the codepoint of a character key. Negative codes
// identify named keys such as Enter or F5.
type Key struct {
	Code rune
	Mod  Mod
}

// K constructs a new Key.
func K(code rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{code, mod}
}

// IsChar returns whether the key inputs a character.
func (k Key) IsChar() bool { return k.Code >= 0 }

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@' which are typically entered with the
	// shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

func (mod Mod) String() string {
	var names []string
	if mod&Ctrl != 0 {
		names = append(names, "Ctrl")
	}
	if mod&Alt != 0 {
		names = append(names, "Alt")
	}
	if mod&Shift != 0 {
		names = append(names, "Shift")
	}
	return strings.Join(names, "-")
}

// Special negative runes to represent named keys, used in the Code field of
// the Key struct.
const (
	Null rune = -iota - 1
	Enter
	Esc
	Backspace
	Tab
	BackTab

	Up
	Down
	Left
	Right

	Home
	End
	PageUp
	PageDown
	Insert
	Delete
)

// MaxF is the highest function key number that can be represented.
const MaxF = 255

// Function keys occupy the codes below fnBase.
const fnBase rune = -0x100

// Function keys that have their own constants. Use F for the rest.
const (
	F1 rune = fnBase - 1 - iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// F returns the code of function key n. It panics if n is not within
// [1, MaxF].
func F(n int) rune {
	if n < 1 || n > MaxF {
		panic(fmt.Sprintf("function key number out of range: %d", n))
	}
	return fnBase - rune(n)
}

// FNumber returns the function key number of code, and whether code is a
// function key at all.
func FNumber(code rune) (int, bool) {
	n := int(fnBase - code)
	if 1 <= n && n <= MaxF {
		return n, true
	}
	return 0, false
}

var keyNames = map[rune]string{
	Null: "Null", Enter: "Enter", Esc: "Esc", Backspace: "Backspace",
	Tab: "Tab", BackTab: "BackTab",
	Up: "Up", Down: "Down", Left: "Left", Right: "Right",
	Home: "Home", End: "End", PageUp: "PageUp", PageDown: "PageDown",
	Insert: "Insert", Delete: "Delete",
	' ': "Space",
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod != 0 {
		sb.WriteString(k.Mod.String())
		sb.WriteByte('-')
	}
	if name, ok := keyNames[k.Code]; ok {
		sb.WriteString(name)
	} else if n, ok := FNumber(k.Code); ok {
		fmt.Fprintf(&sb, "F%d", n)
	} else if k.Code >= 0 {
		sb.WriteRune(k.Code)
	} else {
		fmt.Fprintf(&sb, "(bad key code %d)", k.Code)
	}
	return sb.String()
}

// modifierByName maps a name to an modifier. It is used for parsing keys where
// the modifier string is first turned to lower case, so that all of C, c,
// CTRL, Ctrl and ctrl can represent the Ctrl modifier.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

// ParseKey parses a key. The syntax is:
//
//	Key = { Mod ('+' | '-') } BareKey
//
//	BareKey = NamedKey | FunctionKey | SingleRune
//
// It is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	var k Key
	// Parse modifiers. A single rune is always the bare key, so that "-" and
	// "Ctrl--" are valid.
	for utf8.RuneCountInString(s) > 1 {
		i := strings.IndexAny(s, "+-")
		if i <= 0 {
			break
		}
		modname := strings.ToLower(s[:i])
		mod, ok := modifierByName[modname]
		if !ok {
			return Key{}, fmt.Errorf("bad modifier: %q", modname)
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	if utf8.RuneCountInString(s) == 1 {
		k.Code, _ = utf8.DecodeRuneInString(s)
		return k, nil
	}

	for code, name := range keyNames {
		if s == name {
			k.Code = code
			return k, nil
		}
	}

	var n int
	if _, err := fmt.Sscanf(s, "F%d", &n); err == nil && fmt.Sprintf("F%d", n) == s {
		if 1 <= n && n <= MaxF {
			k.Code = F(n)
			return k, nil
		}
	}

	return Key{}, fmt.Errorf("bad key: %q", s)
}
