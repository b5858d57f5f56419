package lined

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// capability is the one-shot interactive-vs-fallback decision made at the
// start of each GetLine.
type capability int

const (
	capInteractive capability = iota
	capNotATerminal
	capUnsupportedTerm
)

// Terminal types known to choke on the escape sequences we emit.
var incapableTerms = []string{"dumb", "cons25"}

func isIncapableTerm(name string) bool {
	for _, t := range incapableTerms {
		if strings.EqualFold(name, t) {
			return true
		}
	}
	return false
}

func probeTerminal(fd int) capability {
	if !term.IsTerminal(fd) {
		return capNotATerminal
	}
	if isIncapableTerm(os.Getenv("TERM")) {
		return capUnsupportedTerm
	}
	return capInteractive
}

// termState remembers the terminal settings in effect before raw mode so
// they can be restored exactly.
type termState struct {
	fd    int
	saved *unix.Termios
}

// enterRawMode switches fd to raw mode: no echo, no canonical buffering, no
// signal characters, no output post-processing, reads returning as soon as
// one byte is available.
func enterRawMode(fd int) (*termState, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotATerminal
	}
	if isIncapableTerm(os.Getenv("TERM")) {
		return nil, ErrUnsupportedTerminal
	}

	t, err := getTermios(fd)
	if err != nil {
		return nil, fmt.Errorf("lined: query terminal mode: %w", err)
	}
	saved := *t

	raw := *t
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := setTermios(fd, &raw); err != nil {
		return nil, fmt.Errorf("lined: set raw mode: %w", err)
	}

	return &termState{fd: fd, saved: &saved}, nil
}

// restore puts the original settings back. Safe to call more than once and
// after a failed enterRawMode.
func (t *termState) restore() {
	if t == nil || t.saved == nil {
		return
	}
	_ = setTermios(t.fd, t.saved)
	t.saved = nil
}

// terminalColumns reports the column count of the controlling terminal,
// assuming 80 when it cannot be determined.
func terminalColumns() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80
	}
	return int(ws.Col)
}
