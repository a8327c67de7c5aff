package term

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rawterm/rawterm/pkg/logutil"
	"github.com/rawterm/rawterm/pkg/must"
)

// A modeSwitcher that keeps the mode in memory. Raw modes are numbered in
// order of creation.
type fakeSwitcher struct {
	mode     string
	raws     int
	restores int

	snapshotErr, enterErr, restoreErr error
}

func (s *fakeSwitcher) snapshot() (any, error) {
	if s.snapshotErr != nil {
		return nil, s.snapshotErr
	}
	return s.mode, nil
}

func (s *fakeSwitcher) enterRaw(saved any) error {
	if s.enterErr != nil {
		var capErr *CapabilityError
		if !errors.As(s.enterErr, &capErr) {
			return s.enterErr
		}
	}
	s.raws++
	s.mode = fmt.Sprintf("raw%d", s.raws)
	return s.enterErr
}

func (s *fakeSwitcher) restore(saved any) error {
	s.restores++
	if s.restoreErr != nil {
		return s.restoreErr
	}
	s.mode = saved.(string)
	return nil
}

func setupFakeTerminal(t *testing.T) (*Terminal, *fakeSwitcher, *bytes.Buffer) {
	s := &fakeSwitcher{mode: "cooked"}
	var log bytes.Buffer
	logutil.SetOutput(&log)
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })
	return &Terminal{modes: s}, s, &log
}

func TestTerminal_NestedGuardsReleasedInOrder(t *testing.T) {
	term, s, log := setupFakeTerminal(t)

	g1 := must.OK1(term.EnterRawMode())
	g2 := must.OK1(term.EnterRawMode())
	if s.mode != "raw2" || term.Depth() != 2 {
		t.Fatalf("mode %q depth %d, want raw2 depth 2", s.mode, term.Depth())
	}

	g2.Release()
	if s.mode != "raw1" || term.Depth() != 1 {
		t.Errorf("after releasing inner guard: mode %q depth %d, want raw1 depth 1", s.mode, term.Depth())
	}
	g1.Release()
	if s.mode != "cooked" || term.Depth() != 0 {
		t.Errorf("after releasing outer guard: mode %q depth %d, want cooked depth 0", s.mode, term.Depth())
	}
	if log.Len() != 0 {
		t.Errorf("unexpected log output: %q", log.String())
	}
}

func TestRawScreen_ReleaseIsIdempotent(t *testing.T) {
	term, s, _ := setupFakeTerminal(t)

	g := must.OK1(term.EnterRawMode())
	g.Release()
	g.Release()
	if s.restores != 1 {
		t.Errorf("restored %d times, want 1", s.restores)
	}
	if s.mode != "cooked" {
		t.Errorf("mode %q, want cooked", s.mode)
	}
}

func TestTerminal_OutOfOrderRelease(t *testing.T) {
	term, s, log := setupFakeTerminal(t)

	g1 := must.OK1(term.EnterRawMode())
	g2 := must.OK1(term.EnterRawMode())

	g1.Release()
	if s.mode != "cooked" {
		t.Errorf("mode %q, want cooked", s.mode)
	}
	if term.Depth() != 1 {
		t.Errorf("depth %d, want 1", term.Depth())
	}
	if !strings.Contains(log.String(), "out of order") {
		t.Errorf("out-of-order release not logged; log is %q", log.String())
	}

	g2.Release()
	if s.mode != "raw1" {
		t.Errorf("mode %q, want raw1", s.mode)
	}
	if term.Depth() != 0 {
		t.Errorf("depth %d, want 0", term.Depth())
	}
}

func TestTerminal_EnterRawMode_SnapshotError(t *testing.T) {
	term, s, _ := setupFakeTerminal(t)
	s.snapshotErr = errors.New("cannot get mode")

	g, err := term.EnterRawMode()
	if g != nil || err != s.snapshotErr {
		t.Errorf("EnterRawMode -> (%v, %v), want (nil, %v)", g, err, s.snapshotErr)
	}
	if term.Depth() != 0 {
		t.Errorf("depth %d, want 0", term.Depth())
	}
}

func TestTerminal_EnterRawMode_SwitchError(t *testing.T) {
	term, s, _ := setupFakeTerminal(t)
	s.enterErr = errors.New("cannot set mode")

	g, err := term.EnterRawMode()
	if g != nil || err != s.enterErr {
		t.Errorf("EnterRawMode -> (%v, %v), want (nil, %v)", g, err, s.enterErr)
	}
	if s.mode != "cooked" || s.restores != 1 {
		t.Errorf("mode %q after %d restores, want cooked after 1", s.mode, s.restores)
	}
	if term.Depth() != 0 {
		t.Errorf("depth %d, want 0", term.Depth())
	}
}

func TestTerminal_EnterRawMode_MissingCapability(t *testing.T) {
	term, s, _ := setupFakeTerminal(t)
	s.enterErr = &CapabilityError{"virtual terminal output", ErrNotTerminal}

	g, err := term.EnterRawMode()
	var capErr *CapabilityError
	if !errors.As(err, &capErr) || capErr.Capability != "virtual terminal output" {
		t.Errorf("got error %v, want *CapabilityError", err)
	}
	if g == nil {
		t.Fatalf("got nil guard, want usable guard")
	}
	if s.mode != "raw1" || term.Depth() != 1 {
		t.Errorf("mode %q depth %d, want raw1 depth 1", s.mode, term.Depth())
	}
	g.Release()
	if s.mode != "cooked" {
		t.Errorf("mode %q after Release, want cooked", s.mode)
	}
}

func TestRawScreen_Release_LogsRestoreError(t *testing.T) {
	term, s, log := setupFakeTerminal(t)

	g := must.OK1(term.EnterRawMode())
	s.restoreErr = errors.New("cannot restore")
	g.Release()
	if !strings.Contains(log.String(), "cannot restore") {
		t.Errorf("restore error not logged; log is %q", log.String())
	}
	if term.Depth() != 0 {
		t.Errorf("depth %d, want 0", term.Depth())
	}
}

func TestNewTerminal_NotATerminal(t *testing.T) {
	pr, pw := must.Pipe()
	defer pr.Close()
	defer pw.Close()

	term, err := NewTerminal(pr, pw)
	if term != nil {
		t.Errorf("got non-nil Terminal")
	}
	var capErr *CapabilityError
	if !errors.As(err, &capErr) || !errors.Is(err, ErrNotTerminal) {
		t.Errorf("got error %v, want *CapabilityError wrapping ErrNotTerminal", err)
	}
}

func TestCapabilityError(t *testing.T) {
	err := &CapabilityError{"raw mode", ErrNotTerminal}
	if got, want := err.Error(), "raw mode unsupported: not a terminal"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
}
