package demo

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rawterm/rawterm/pkg/prog"
	"github.com/rawterm/rawterm/pkg/term"
)

const stderrText = `
This screen is ran on stderr.
And when you hit a key, it prints on stdout.
This makes it possible to run an application and choose what will
be sent to any application calling yours.

For example, assuming you build this example with

    go build ./cmd/examples/stderr

and then you run it with

    cd "$(./stderr)"

what the application prints on stdout is used as argument to cd.

Try it out.

Hit any key to quit this screen:

1 will print ` + "`..`" + `
2 will print ` + "`/`" + `
3 will print ` + "`~`" + `
Any other key will print this text (so that you may copy-paste)
`

// StderrProgram draws a screen on stderr, using the alternate screen, and
// prints a path on stdout depending on the key pressed.
type StderrProgram struct{}

func (StderrProgram) RegisterFlags(*flag.FlagSet) {}

func (StderrProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := f.ReaderConfig()
	if err != nil {
		return err
	}
	t, err := term.NewTerminal(fds[0], fds[2])
	if err != nil {
		return err
	}
	c, err := runStderrScreen(t, cfg)
	if err != nil {
		return err
	}
	switch c {
	case '1':
		fmt.Fprint(fds[1], "..")
	case '2':
		fmt.Fprint(fds[1], "/")
	case '3':
		fmt.Fprint(fds[1], "~")
	default:
		fmt.Fprint(fds[1], stderrText+"\n")
	}
	return nil
}

// Shows the text in the alternate screen and returns the first character key
// pressed.
func runStderrScreen(t *term.Terminal, cfg *term.Config) (rune, error) {
	width := 80
	if cols, _, err := t.Size(); err == nil {
		width = cols
	}

	q := t.NewQueue()
	q.Queue(term.EnterAlternateScreen{}, term.Hide{})
	for i, line := range strings.Split(stderrText, "\n") {
		// Lines start at column 1.
		q.Queue(term.MoveTo{X: 1, Y: i + 1},
			term.Output(runewidth.Truncate(line, width-1, "…")))
	}
	if err := q.Flush(); err != nil {
		return 0, err
	}
	defer func() {
		if err := q.Execute(term.Show{}, term.LeaveAlternateScreen{}); err != nil {
			logger.Println("leaving alternate screen:", err)
		}
	}()

	raw, err := enterRawMode(t)
	if err != nil {
		return 0, err
	}
	defer raw.Release()

	r, err := t.NewReader(cfg)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return readChar(r)
}

// Reads events until a character key is pressed.
func readChar(r term.Reader) (rune, error) {
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return 0, err
		}
		if k, ok := ev.(term.KeyEvent); ok && k.Code >= 0 {
			return k.Code, nil
		}
	}
}
