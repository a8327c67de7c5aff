package term

import (
	"testing"

	"golang.org/x/sys/windows"

	"github.com/rawterm/rawterm/pkg/must"
	"github.com/rawterm/rawterm/pkg/sys/ewindows"
)

func TestWaker(t *testing.T) {
	wk := must.OK1(NewWaker())
	defer wk.Close()

	handles := []windows.Handle{wk.handle()}
	if i := must.OK1(ewindows.WaitForMultipleObjects(handles, false, 0)); i != -1 {
		t.Errorf("new Waker is signaled")
	}
	wk.Wake()
	wk.Wake()
	if i := must.OK1(ewindows.WaitForMultipleObjects(handles, false, 0)); i != 0 {
		t.Errorf("Waker not signaled after Wake")
	}
	// The event resets itself after one wait observes it.
	if i := must.OK1(ewindows.WaitForMultipleObjects(handles, false, 0)); i != -1 {
		t.Errorf("Waker still signaled after one wait")
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
	wk.Wake()
}
