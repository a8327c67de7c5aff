// Package prog provides the common entry point of rawterm programs: it parses
// the flags they share, sets up logging and hands over to the program.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rawterm/rawterm/pkg/env"
	"github.com/rawterm/rawterm/pkg/logutil"
	"github.com/rawterm/rawterm/pkg/term"
)

// Flags keeps command-line flags shared by all programs.
type Flags struct {
	Log, Config string

	Help bool
}

// Program represents a program.
type Program interface {
	// RegisterFlags registers flags specific to the program.
	RegisterFlags(fs *flag.FlagSet)
	// Run runs the program. It is called after flags are parsed.
	Run(fds [3]*os.File, f *Flags, args []string) error
}

func newFlagSet(name string, f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", os.Getenv(env.RAWTERM_LOG),
		"a file to write debug log to; defaults to $"+env.RAWTERM_LOG)
	fs.StringVar(&f.Config, "config", os.Getenv(env.RAWTERM_CONFIG),
		"a YAML file configuring the event reader; defaults to $"+env.RAWTERM_CONFIG)
	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(out, "Usage: %s [flags]\n", fs.Name())
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// Run parses command-line flags and runs the program. It returns the exit
// status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(filepath.Base(args[0]), f)
	p.RegisterFlags(fs)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// ReaderConfig returns the event reader configuration named by the -config
// flag, or the default configuration if the flag is empty.
func (f *Flags) ReaderConfig() (*term.Config, error) {
	if f.Config == "" {
		return term.DefaultConfig(), nil
	}
	return term.LoadConfigFile(f.Config)
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
