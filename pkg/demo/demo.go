// Package demo implements the example programs of rawterm. Each program is a
// [prog.Program]; the main packages under cmd/examples just run them.
package demo

import (
	"github.com/rawterm/rawterm/pkg/logutil"
	"github.com/rawterm/rawterm/pkg/term"
)

var logger = logutil.GetLogger("[demo] ")

// Enters raw mode. A missing optional capability is logged and otherwise
// ignored.
func enterRawMode(t *term.Terminal) (*term.RawScreen, error) {
	raw, err := t.EnterRawMode()
	if raw == nil {
		return nil, err
	}
	if err != nil {
		logger.Println("entering raw mode:", err)
	}
	return raw, nil
}
