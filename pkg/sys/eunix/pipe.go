//go:build unix

package eunix

import "golang.org/x/sys/unix"

// NonblockPipe creates a pipe whose both ends are non-blocking and
// close-on-exec. It is intended for self-signaling: writes never block when
// the pipe is full and reads never block when it is empty.
func NonblockPipe() (r, w int, err error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return -1, -1, err
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return -1, -1, err
		}
	}
	return p[0], p[1], nil
}

// Drain reads from a non-blocking descriptor until it would block, and returns
// the number of bytes discarded.
func Drain(fd int) (int, error) {
	var buf [64]byte
	total := 0
	for {
		n, err := unix.Read(fd, buf[:])
		if n > 0 {
			total += n
		}
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return total, nil
		case err != nil:
			return total, err
		case n == 0:
			return total, nil
		}
	}
}
