package term

import (
	"testing"
	"time"

	"github.com/rawterm/rawterm/pkg/testutil"
)

// Runs a goroutine that keeps calling ReadEvent until it gets ErrClosed, and
// checks that Close returns and stops it.
func testCloseStopsRetryingReader(t *testing.T, r Reader) {
	t.Helper()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		for {
			if _, err := r.ReadEvent(); err == ErrClosed {
				return
			}
		}
	}()
	time.Sleep(testutil.Scaled(time.Millisecond))

	closeDone := make(chan error, 1)
	go func() { closeDone <- r.Close() }()
	select {
	case err := <-closeDone:
		if err != nil {
			t.Errorf("Close -> %v, want nil", err)
		}
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("Close did not return while another goroutine kept reading")
	}
	select {
	case <-loopDone:
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("reading goroutine did not see ErrClosed")
	}
}
