package lined

import "errors"

var (
	// ErrInterrupted is returned by GetLine when the user pressed ctrl-c.
	ErrInterrupted = errors.New("lined: interrupted")

	// ErrNotATerminal is returned when raw mode is requested on a stream
	// that is not attached to a terminal.
	ErrNotATerminal = errors.New("lined: not a terminal")

	// ErrUnsupportedTerminal marks a terminal type that cannot handle the
	// escape sequences this package emits.
	ErrUnsupportedTerminal = errors.New("lined: unsupported terminal")
)
