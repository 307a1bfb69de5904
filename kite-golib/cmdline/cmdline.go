package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	arg "github.com/alexflint/go-arg"
	"github.com/kiteco/jetml/kite-golib/errors"
)

// Command represents an action that can be run from the command line
type Command struct {
	Name     string
	Synopsis string
	Args     Handler
}

// Handler represents a function that gets called for an action
type Handler interface {
	Handle() error
}

// Validator is the interface for custom validation of command line arguments
type Validator interface {
	Validate() error
}

// ErrUsage is returned by Dispatch when usage or help was written instead of running a command
var ErrUsage = errors.New("usage requested")

// UsageError reports a command line that could not be parsed or validated
type UsageError struct {
	Command string
	Err     error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func prog() string {
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "program"
}

func writeUsage(w io.Writer, cmds ...Command) {
	fmt.Fprintf(w, "Usage: %s COMMAND [ARGS]\n", prog())
	fmt.Fprintf(w, "Command can be one of:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.Name, cmd.Synopsis)
	}
	fmt.Fprintf(w, "  %-20s %s\n", "help", "display this help and exit")
	fmt.Fprintf(w, "  %-20s %s\n", "help COMMAND", "display help for command and exit")
}

func find(name string, cmds []Command) *Command {
	for i := range cmds {
		if cmds[i].Name == name {
			return &cmds[i]
		}
	}
	return nil
}

// Dispatch parses args (without the program name) and runs the selected command's handler.
// Help output goes to w and yields ErrUsage; parse and validation failures yield a UsageError.
func Dispatch(w io.Writer, args []string, cmds ...Command) error {
	if len(args) == 0 {
		writeUsage(w, cmds...)
		return UsageError{Command: prog(), Err: errors.New("no command provided")}
	}

	var help bool
	action := args[0]
	if action == "help" {
		if len(args) < 2 {
			writeUsage(w, cmds...)
			return ErrUsage
		}
		help = true
		action = args[1]
	}

	cmd := find(action, cmds)
	if cmd == nil {
		writeUsage(w, cmds...)
		return UsageError{Command: prog(), Err: errors.New("unknown command %s", action)}
	}

	parser, err := arg.NewParser(arg.Config{Program: prog() + " " + action}, cmd.Args)
	if err != nil {
		return errors.Wrapf(err, "invalid arguments for %s", action)
	}

	if help {
		parser.WriteHelp(w)
		return ErrUsage
	}

	switch err := parser.Parse(args[1:]); err {
	case nil:
	case arg.ErrHelp:
		parser.WriteHelp(w)
		return ErrUsage
	default:
		parser.WriteUsage(w)
		return UsageError{Command: action, Err: err}
	}

	if v, ok := cmd.Args.(Validator); ok {
		if err := v.Validate(); err != nil {
			parser.WriteUsage(w)
			return UsageError{Command: action, Err: err}
		}
	}

	return cmd.Args.Handle()
}

// MustDispatch dispatches one of the commands using os.Args and exits on failure
func MustDispatch(cmds ...Command) {
	switch err := Dispatch(os.Stdout, os.Args[1:], cmds...); {
	case err == nil:
	case err == ErrUsage:
		os.Exit(0)
	default:
		if _, ok := errors.Cause(err).(UsageError); ok {
			fmt.Fprintln(os.Stderr, "\nError:", err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
