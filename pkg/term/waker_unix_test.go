//go:build unix

package term

import (
	"testing"
	"time"

	"github.com/rawterm/rawterm/pkg/must"
	"github.com/rawterm/rawterm/pkg/sys/eunix"
	"github.com/rawterm/rawterm/pkg/testutil"
)

func TestWaker(t *testing.T) {
	wk := must.OK1(NewWaker())
	defer wk.Close()

	if wakerReady(wk) {
		t.Errorf("new Waker is ready")
	}
	wk.Wake()
	if !wakerReady(wk) {
		t.Errorf("Waker not ready after Wake")
	}
	wk.reset()
	if wakerReady(wk) {
		t.Errorf("Waker still ready after reset")
	}
}

func TestWaker_WakeNeverBlocks(t *testing.T) {
	wk := must.OK1(NewWaker())
	defer wk.Close()

	done := make(chan struct{})
	go func() {
		// Far more than the capacity of a pipe.
		for i := 0; i < 1<<20; i++ {
			wk.Wake()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(testutil.Scaled(5 * time.Second)):
		t.Fatal("Wake blocked")
	}
	wk.reset()
	if wakerReady(wk) {
		t.Errorf("Waker still ready after reset")
	}
}

func TestWaker_Close(t *testing.T) {
	wk := must.OK1(NewWaker())

	if err := wk.Close(); err != nil {
		t.Errorf("Close -> %v, want nil", err)
	}
	if err := wk.Close(); err != nil {
		t.Errorf("second Close -> %v, want nil", err)
	}
	// Does nothing.
	wk.Wake()
}

func wakerReady(wk *Waker) bool {
	ready := must.OK1(eunix.WaitForRead(0, wk.fd()))
	return ready[0]
}
