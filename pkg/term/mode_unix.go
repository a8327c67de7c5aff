//go:build unix

package term

import (
	"os"

	"github.com/rawterm/rawterm/pkg/sys/eunix"
)

// Switches modes with termios on the input terminal.
type termiosSwitcher struct{ fd int }

func newModeSwitcher(in, _ *os.File) modeSwitcher {
	return termiosSwitcher{int(in.Fd())}
}

func (s termiosSwitcher) snapshot() (any, error) {
	term, err := eunix.GetTermios(s.fd)
	if err != nil {
		return nil, err
	}
	return term, nil
}

func (s termiosSwitcher) enterRaw(saved any) error {
	return eunix.SetTermios(s.fd, eunix.MakeRaw(saved.(*eunix.Termios)))
}

func (s termiosSwitcher) restore(saved any) error {
	return eunix.SetTermios(s.fd, saved.(*eunix.Termios))
}
