// Command stderr draws an interactive screen on stderr and prints a path on
// stdout, so that it can be used like cd "$(stderr)".
package main

import (
	"os"

	"github.com/rawterm/rawterm/pkg/demo"
	"github.com/rawterm/rawterm/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, demo.StderrProgram{}))
}
