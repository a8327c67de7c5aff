package demo

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rawterm/rawterm/pkg/prog"
	"github.com/rawterm/rawterm/pkg/term"
	"github.com/rawterm/rawterm/pkg/ui"
)

// EventsProgram prints every event read from the terminal until q or Ctrl-C
// is pressed.
type EventsProgram struct {
	timeout time.Duration
	mouse   bool
}

func (p *EventsProgram) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&p.timeout, "timeout", 0,
		"stop reading events after this long; 0 means no timeout")
	fs.BoolVar(&p.mouse, "mouse", false, "report mouse events")
}

func (p *EventsProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := f.ReaderConfig()
	if err != nil {
		return err
	}
	t, err := term.NewTerminal(fds[0], fds[1])
	if err != nil {
		return err
	}
	raw, err := enterRawMode(t)
	if err != nil {
		return err
	}
	defer raw.Release()

	r, err := t.NewReader(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	q := t.NewQueue()
	if p.mouse {
		if err := q.Execute(term.EnableMouseCapture{}); err != nil {
			return err
		}
		defer func() {
			if err := q.Execute(term.DisableMouseCapture{}); err != nil {
				logger.Println("disabling mouse capture:", err)
			}
		}()
	}
	if p.timeout > 0 {
		// The timer fires in its own goroutine.
		timer := time.AfterFunc(p.timeout, r.Waker().Wake)
		defer timer.Stop()
	}

	if err := q.Execute(term.Output("Press q or Ctrl-C to quit.\r\n")); err != nil {
		return err
	}
	for {
		ev, err := r.ReadEvent()
		if err == term.ErrCancelled {
			return q.Execute(term.Output("Timed out.\r\n"))
		} else if err != nil {
			return err
		}
		if err := q.Execute(term.Output(describe(ev) + "\r\n")); err != nil {
			return err
		}
		if ev == term.K('q') || ev == term.K('c', ui.Ctrl) {
			return nil
		}
	}
}

func describe(ev term.Event) string {
	switch ev := ev.(type) {
	case term.KeyEvent:
		return "key " + ev.String()
	case term.MouseEvent:
		s := fmt.Sprintf("mouse %v", ev.Kind)
		if ev.Button != term.MouseNoButton {
			s += " " + ev.Button.String()
		}
		s += fmt.Sprintf(" at column %d row %d", ev.Col, ev.Row)
		if ev.Mod != 0 {
			s += " with " + ev.Mod.String()
		}
		return s
	case term.ResizeEvent:
		return fmt.Sprintf("resize to %d columns %d rows", ev.Cols, ev.Rows)
	default:
		return fmt.Sprintf("unknown event %v", ev)
	}
}
