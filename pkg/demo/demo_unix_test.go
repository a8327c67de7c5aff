//go:build unix

package demo

import (
	"errors"
	"flag"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rawterm/rawterm/pkg/must"
	"github.com/rawterm/rawterm/pkg/prog"
	"github.com/rawterm/rawterm/pkg/prog/progtest"
	"github.com/rawterm/rawterm/pkg/testutil"
)

func TestEventsProgram_TimesOut(t *testing.T) {
	_, tty := testutil.OpenPty(t, 24, 80)

	exit, stdout, _ := progtest.RunWithStdin(&EventsProgram{}, tty, "-timeout", "50ms")
	if exit != 0 {
		t.Errorf("got exit %v, want 0", exit)
	}
	if !strings.Contains(stdout, "Timed out.") {
		t.Errorf("got stdout %q, want it to contain %q", stdout, "Timed out.")
	}
}

func TestEventsProgram_PrintsKeys(t *testing.T) {
	ptmx, tty := testutil.OpenPty(t, 24, 80)

	go func() {
		time.Sleep(testutil.Scaled(100 * time.Millisecond))
		ptmx.WriteString("x\033[A")
		time.Sleep(testutil.Scaled(10 * time.Millisecond))
		ptmx.WriteString("q")
	}()
	exit, stdout, _ := progtest.RunWithStdin(&EventsProgram{}, tty, "-timeout", "5s")
	if exit != 0 {
		t.Errorf("got exit %v, want 0", exit)
	}
	for _, want := range []string{"key x\r\n", "key Up\r\n", "key q\r\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("got stdout %q, want it to contain %q", stdout, want)
		}
	}
	if strings.Contains(stdout, "Timed out.") {
		t.Errorf("got stdout %q, want no timeout", stdout)
	}
}

func TestEventsProgram_MouseCapture(t *testing.T) {
	_, tty := testutil.OpenPty(t, 24, 80)

	_, stdout, _ := progtest.RunWithStdin(&EventsProgram{}, tty, "-mouse", "-timeout", "10ms")
	for _, want := range []string{"\033[?1000h", "\033[?1000l"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("got stdout %q, want it to contain %q", stdout, want)
		}
	}
}

func TestEventsProgram_OutputError(t *testing.T) {
	_, tty := testutil.OpenPty(t, 24, 80)
	r, w := must.Pipe()
	r.Close()
	w.Close()

	for _, args := range [][]string{nil, {"-mouse"}} {
		p := &EventsProgram{}
		rest := parseFlags(p, args)
		err := p.Run([3]*os.File{tty, w, os.Stderr}, &prog.Flags{}, rest)
		if !errors.Is(err, os.ErrClosed) {
			t.Errorf("Run with %v and closed stdout -> %v, want os.ErrClosed", args, err)
		}
	}
}

// Parses program-specific flags and returns the remaining arguments.
func parseFlags(p prog.Program, args []string) []string {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	p.RegisterFlags(fs)
	must.OK(fs.Parse(args))
	return fs.Args()
}

func TestEventsProgram_NotTerminal(t *testing.T) {
	progtest.Test(t, &EventsProgram{},
		progtest.ThatProgram().ExitsWith(2).
			WritesStderrContaining("not a terminal"),
		progtest.ThatProgram("foo").ExitsWith(2).
			WritesStderrContaining("arguments are not supported"),
	)
}

func TestStderrProgram(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"1", ".."},
		{"2", "/"},
		{"3", "~"},
		{"x", stderrText + "\n"},
	}
	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			ptmx, tty := testutil.OpenPty(t, 24, 40)
			go func() {
				time.Sleep(testutil.Scaled(100 * time.Millisecond))
				ptmx.WriteString(test.key)
			}()

			exit, stdout, stderr := progtest.RunWithStdin(StderrProgram{}, tty)
			if exit != 0 {
				t.Errorf("got exit %v, want 0", exit)
			}
			if stdout != test.want {
				t.Errorf("got stdout %q, want %q", stdout, test.want)
			}
			for _, want := range []string{"\033[?1049h", "\033[?25l", "\033[?25h", "\033[?1049l"} {
				if !strings.Contains(stderr, want) {
					t.Errorf("got stderr %q, want it to contain %q", stderr, want)
				}
			}
		})
	}
}

func TestStderrProgram_TruncatesLines(t *testing.T) {
	ptmx, tty := testutil.OpenPty(t, 24, 20)
	go func() {
		time.Sleep(testutil.Scaled(100 * time.Millisecond))
		ptmx.WriteString("1")
	}()

	_, _, stderr := progtest.RunWithStdin(StderrProgram{}, tty)
	if want := "This screen is ran…"; !strings.Contains(stderr, want) {
		t.Errorf("got stderr %q, want it to contain %q", stderr, want)
	}
	if strings.Contains(stderr, "This screen is ran on") {
		t.Errorf("got stderr %q, want long lines truncated", stderr)
	}
}
