//go:build unix

package testutil

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

// OpenPty opens a pseudo-terminal with the given size, closing both ends when
// the test finishes. It skips the test if no pty is available.
func OpenPty(t *testing.T, rows, cols uint16) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		t.Fatal("cannot set pty size:", err)
	}
	return ptmx, tty
}
