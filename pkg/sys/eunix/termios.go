//go:build unix

package eunix

import "golang.org/x/sys/unix"

// Termios is the line discipline state of a terminal.
type Termios = unix.Termios

// GetTermios reads the attributes of the terminal referenced by fd.
func GetTermios(fd int) (*Termios, error) {
	return unix.IoctlGetTermios(fd, getAttrIOCTL)
}

// SetTermios applies the attributes to the terminal referenced by fd
// immediately, without waiting for pending output to drain.
func SetTermios(fd int, term *Termios) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, term)
}

// MakeRaw returns a copy of term with the line discipline turned off: no
// echo, no canonical (line-buffered) input, no signals generated from control
// characters, no CR/NL translation or flow control on input and no output
// post-processing. Reads return after each byte.
func MakeRaw(term *Termios) *Termios {
	raw := *term
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return &raw
}
