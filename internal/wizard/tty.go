package wizard

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrCanceled reports that the user backed out of an interactive session.
var ErrCanceled = errors.New("canceled")

// ErrNoTerminal reports that stdin is not attached to a terminal.
var ErrNoTerminal = errors.New("stdin is not a terminal")

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
