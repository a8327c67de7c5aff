package ui

import "testing"

var kTests = []struct {
	k1 Key
	k2 Key
}{
	{K('a'), Key{'a', 0}},
	{K('a', Alt), Key{'a', Alt}},
	{K('a', Alt, Ctrl), Key{'a', Alt | Ctrl}},
}

func TestK(t *testing.T) {
	for _, test := range kTests {
		if test.k1 != test.k2 {
			t.Errorf("%v != %v", test.k1, test.k2)
		}
	}
}

var keyStringTests = []struct {
	k    Key
	want string
}{
	{K('a'), "a"},
	{K('a', Alt), "Alt-a"},
	{K('a', Ctrl, Alt, Shift), "Ctrl-Alt-Shift-a"},
	{K(' '), "Space"},
	{K(Enter), "Enter"},
	{K(Esc), "Esc"},
	{K(Up, Shift), "Shift-Up"},
	{K(F1), "F1"},
	{K(F12), "F12"},
	{K(F(24), Ctrl), "Ctrl-F24"},
	{K(-2000), "(bad key code -2000)"},
}

func TestKey_String(t *testing.T) {
	for _, test := range keyStringTests {
		if got := test.k.String(); got != test.want {
			t.Errorf("%#v.String() -> %q, want %q", test.k, got, test.want)
		}
	}
}

func TestF(t *testing.T) {
	for n := 1; n <= MaxF; n++ {
		got, ok := FNumber(F(n))
		if !ok || got != n {
			t.Errorf("FNumber(F(%d)) -> (%d, %v)", n, got, ok)
		}
	}
	if F(1) != F1 || F(12) != F12 {
		t.Errorf("F constants do not agree with F")
	}
	for _, code := range []rune{'a', 0, Null, Delete, fnBase, fnBase - MaxF - 1} {
		if _, ok := FNumber(code); ok {
			t.Errorf("FNumber(%d) reports a function key", code)
		}
	}
}

func TestF_PanicsOutOfRange(t *testing.T) {
	for _, n := range []int{0, MaxF + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("F(%d) did not panic", n)
				}
			}()
			F(n)
		}()
	}
}

var parseKeyTests = []struct {
	s       string
	wantKey Key
	wantErr string
}{
	{s: "x", wantKey: K('x')},
	{s: "-", wantKey: K('-')},
	{s: "Tab", wantKey: K(Tab)},
	{s: "F1", wantKey: K(F1)},
	{s: "F200", wantKey: K(F(200))},
	{s: "Space", wantKey: K(' ')},

	// Alt- keys are case-sensitive.
	{s: "a-x", wantKey: Key{'x', Alt}},
	{s: "a-X", wantKey: Key{'X', Alt}},

	// + is the same as -.
	{s: "C+x", wantKey: Key{'x', Ctrl}},
	{s: "Ctrl--", wantKey: Key{'-', Ctrl}},

	// Full names are case-insensitive.
	{s: "CTRL-Shift-Up", wantKey: Key{Up, Ctrl | Shift}},

	{s: "F0", wantErr: `bad key: "F0"`},
	{s: "F01", wantErr: `bad key: "F01"`},
	{s: "Hyper-x", wantErr: `bad modifier: "hyper"`},
	{s: "Enterprise", wantErr: `bad key: "Enterprise"`},
}

func TestParseKey(t *testing.T) {
	for _, test := range parseKeyTests {
		t.Run(test.s, func(t *testing.T) {
			key, err := ParseKey(test.s)
			if key != test.wantKey {
				t.Errorf("got key %v, want %v", key, test.wantKey)
			}
			if test.wantErr != "" {
				if err == nil || err.Error() != test.wantErr {
					t.Errorf("got err %v, want %v", err, test.wantErr)
				}
			} else if err != nil {
				t.Errorf("got err %v, want nil", err)
			}
		})
	}
}

func TestParseKey_RoundTrip(t *testing.T) {
	for _, test := range keyStringTests[:len(keyStringTests)-1] {
		k, err := ParseKey(test.k.String())
		if err != nil || k != test.k {
			t.Errorf("ParseKey(%q) -> (%v, %v), want %v", test.k.String(), k, err, test.k)
		}
	}
}
