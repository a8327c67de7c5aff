//go:build unix

package eunix

import (
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given file descriptors is ready to be
// read or timeout. A negative timeout means no timeout. It returns a boolean
// array indicating which descriptors are ready to be read and any possible
// error. A descriptor whose writing end has been closed is reported as ready,
// so that the following read can observe EOF.
func WaitForRead(timeout time.Duration, fds ...int) (ready []bool, err error) {
	pollFds := make([]unix.PollFd, len(fds))
	for i, fd := range fds {
		pollFds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
	}
	_, err = unix.Poll(pollFds, timeoutMs(timeout))
	ready = make([]bool, len(fds))
	if err != nil {
		return ready, err
	}
	for i, pfd := range pollFds {
		ready[i] = pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
	}
	return ready, nil
}

// Converts a timeout to milliseconds for poll(2), rounding up so that a short
// positive timeout does not turn into a busy loop.
func timeoutMs(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	return int((timeout + time.Millisecond - 1) / time.Millisecond)
}
