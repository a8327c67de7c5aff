// Command events prints the events read from the terminal in raw mode.
package main

import (
	"os"

	"github.com/rawterm/rawterm/pkg/demo"
	"github.com/rawterm/rawterm/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, &demo.EventsProgram{}))
}
