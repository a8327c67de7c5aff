//go:build windows

package ewindows

import (
	"testing"
	"time"

	"golang.org/x/sys/windows"
)

func TestWaitForMultipleObjects(t *testing.T) {
	e0 := mustCreateEvent(t)
	e1 := mustCreateEvent(t)

	if i, err := WaitForMultipleObjects([]windows.Handle{e0, e1}, false, 0); i != -1 || err != nil {
		t.Errorf("got (%d, %v), want (-1, nil)", i, err)
	}
	windows.SetEvent(e1)
	if i, err := WaitForMultipleObjects([]windows.Handle{e0, e1}, false, INFINITE); i != 1 || err != nil {
		t.Errorf("got (%d, %v), want (1, nil)", i, err)
	}
}

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want uint32
	}{
		{-1, INFINITE},
		{0, 0},
		{time.Microsecond, 1},
		{2 * time.Second, 2000},
	}
	for _, test := range tests {
		if got := Milliseconds(test.d); got != test.want {
			t.Errorf("Milliseconds(%v) -> %d, want %d", test.d, got, test.want)
		}
	}
}

func mustCreateEvent(t *testing.T) windows.Handle {
	t.Helper()
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		t.Fatal("CreateEvent:", err)
	}
	t.Cleanup(func() { windows.CloseHandle(h) })
	return h
}
