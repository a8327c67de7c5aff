//go:build unix

package term

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/rawterm/rawterm/pkg/must"
	"github.com/rawterm/rawterm/pkg/sys/eunix"
	"github.com/rawterm/rawterm/pkg/testutil"
)

func TestTerminal_RawModeRoundTrip(t *testing.T) {
	term, tty := setupPtyTerminal(t)
	fd := int(tty.Fd())
	before := must.OK1(eunix.GetTermios(fd))

	g := must.OK1(term.EnterRawMode())
	raw := must.OK1(eunix.GetTermios(fd))
	if raw.Lflag&(unix.ECHO|unix.ICANON|unix.ISIG|unix.IEXTEN) != 0 {
		t.Errorf("local flags %#x still have echo, canonical, signal or extended bits", raw.Lflag)
	}
	if raw.Iflag&(unix.ICRNL|unix.IXON) != 0 {
		t.Errorf("input flags %#x still translate CR or control flow", raw.Iflag)
	}
	if raw.Oflag&unix.OPOST != 0 {
		t.Errorf("output flags %#x still post-process output", raw.Oflag)
	}

	g.Release()
	after := must.OK1(eunix.GetTermios(fd))
	if *after != *before {
		t.Errorf("termios after Release differs from before EnterRawMode")
	}
}

func TestTerminal_NestedRawModeRoundTrip(t *testing.T) {
	term, tty := setupPtyTerminal(t)
	fd := int(tty.Fd())
	before := must.OK1(eunix.GetTermios(fd))

	g1 := must.OK1(term.EnterRawMode())
	g2 := must.OK1(term.EnterRawMode())
	g2.Release()
	if term.Depth() != 1 {
		t.Errorf("depth %d, want 1", term.Depth())
	}
	g1.Release()

	after := must.OK1(eunix.GetTermios(fd))
	if *after != *before {
		t.Errorf("termios after releasing nested guards differs from before")
	}
}

func TestTerminal_Size(t *testing.T) {
	term, _ := setupPtyTerminal(t)

	cols, rows, err := term.Size()
	if cols != 100 || rows != 30 || err != nil {
		t.Errorf("Size() -> (%d, %d, %v), want (100, 30, nil)", cols, rows, err)
	}
}

func setupPtyTerminal(t *testing.T) (*Terminal, *os.File) {
	_, tty := testutil.OpenPty(t, 30, 100)
	return must.OK1(NewTerminal(tty, tty)), tty
}
