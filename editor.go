// Package lined is a minimal ANSI/VT100 line-editing library: raw-mode
// input with emacs-style keys, single- or multi-row prompt redraw, a
// bounded navigable history, and pluggable tab-completion. On streams that
// are not capable terminals it degrades to a plain buffered line read.
package lined

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Editor owns the process-wide pieces of line editing: the history shared
// across reads, the completion producer, and the stream pair. One GetLine
// call at a time; the editor itself is not safe for concurrent use.
type Editor struct {
	in  io.Reader
	out io.Writer

	history   *history
	producer  CompletionProducer
	multiLine bool

	// cols overrides the probed terminal width when nonzero; tests use it.
	cols int
	// probe decides interactive vs fallback once per GetLine.
	probe func() capability

	fallbackReader *bufio.Reader
}

// NewEditor returns an editor wired to stdin/stdout with an empty history
// of the default capacity.
func NewEditor() *Editor {
	e := &Editor{
		in:      os.Stdin,
		out:     os.Stdout,
		history: newHistory(),
	}
	e.probe = func() capability { return probeTerminal(e.inputFd()) }
	return e
}

// inputFd is the descriptor the capability probe and raw mode apply to.
// It must follow the injectable reader, or GetLine would flip the mode of
// one stream while reading another.
func (e *Editor) inputFd() int {
	if f, ok := e.in.(*os.File); ok {
		return int(f.Fd())
	}
	return int(os.Stdin.Fd())
}

// SetMultiLine switches between single-row rendering (the default), where
// long lines scroll horizontally, and multi-row rendering, where they wrap.
func (e *Editor) SetMultiLine(enabled bool) {
	e.multiLine = enabled
}

// SetCompletionProducer registers the callback consulted on tab. A nil
// producer makes tab insert a literal tab character.
func (e *Editor) SetCompletionProducer(p CompletionProducer) {
	e.producer = p
}

// GetLine reads one line with the given prompt. It returns ErrInterrupted
// on ctrl-c and io.EOF on ctrl-d with an empty buffer. When the input is
// not an interactive, escape-capable terminal, it falls back to a buffered
// read up to the next line terminator.
func (e *Editor) GetLine(prompt string) (string, error) {
	switch e.probe() {
	case capNotATerminal:
		return e.readPlainLine(prompt, false)
	case capUnsupportedTerm:
		return e.readPlainLine(prompt, true)
	}

	state, err := enterRawMode(e.inputFd())
	if err != nil {
		return "", err
	}
	defer state.restore()

	line, err := e.edit(prompt)

	state.restore()
	_, _ = io.WriteString(e.out, "\n")
	return line, err
}

// readPlainLine is the non-interactive fallback. The prompt is echoed only
// for the unsupported-terminal case; a plain pipe gets no prompt.
func (e *Editor) readPlainLine(prompt string, echoPrompt bool) (string, error) {
	if echoPrompt {
		_, _ = io.WriteString(e.out, prompt)
	}
	if e.fallbackReader == nil {
		e.fallbackReader = bufio.NewReader(e.in)
	}
	line, err := e.fallbackReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AddToHistory appends line to the history, reporting whether it was added.
// A duplicate of the newest entry is rejected.
func (e *Editor) AddToHistory(line string) bool {
	return e.history.add(line)
}

// SetHistoryCapacity bounds the history to the newest n entries; n must be
// at least 1.
func (e *Editor) SetHistoryCapacity(n int) error {
	return e.history.setCapacity(n)
}

// LoadHistory reads newline-separated entries from path. A missing file is
// not an error.
func (e *Editor) LoadHistory(path string) error {
	return e.history.load(path)
}

// SaveHistory writes the history to path, one entry per line.
func (e *Editor) SaveHistory(path string) error {
	return e.history.save(path)
}

// ClearScreen clears the terminal and homes the cursor.
func (e *Editor) ClearScreen() {
	vtClearScreen(e.out)
}

func (e *Editor) columns() int {
	if e.cols != 0 {
		return e.cols
	}
	return terminalColumns()
}
