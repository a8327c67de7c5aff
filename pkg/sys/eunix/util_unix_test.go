//go:build unix

package eunix

import (
	"testing"

	"golang.org/x/sys/unix"
)

func writeAll(t *testing.T, fd int, s string) {
	t.Helper()
	if _, err := unix.Write(fd, []byte(s)); err != nil {
		t.Fatal("write:", err)
	}
}

func closeFds(fds ...int) {
	for _, fd := range fds {
		unix.Close(fd)
	}
}
