package lined

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fallbackEditor wires an editor to a pipe-like stream pair that probes as
// the given capability.
func fallbackEditor(input string, probed capability) (*Editor, *bytes.Buffer) {
	out := &bytes.Buffer{}
	e := NewEditor()
	e.in = strings.NewReader(input)
	e.out = out
	e.probe = func() capability { return probed }
	return e, out
}

func TestGetLinePipeFallback(t *testing.T) {
	e, out := fallbackEditor("abc\n", capNotATerminal)

	line, err := e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
	// A plain pipe gets no prompt.
	assert.Equal(t, "", out.String())
}

func TestGetLineUnsupportedTermEchoesPrompt(t *testing.T) {
	e, out := fallbackEditor("abc\n", capUnsupportedTerm)

	line, err := e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
	assert.Equal(t, "> ", out.String())
}

func TestGetLineFallbackEOF(t *testing.T) {
	e, _ := fallbackEditor("", capNotATerminal)

	_, err := e.GetLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetLineFallbackPartialLastLine(t *testing.T) {
	// A final line with no terminator is still a line.
	e, _ := fallbackEditor("abc", capNotATerminal)

	line, err := e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestGetLineFallbackTrimsCRLF(t *testing.T) {
	e, _ := fallbackEditor("abc\r\n", capNotATerminal)

	line, err := e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestGetLineFallbackReadsSuccessiveLines(t *testing.T) {
	e, _ := fallbackEditor("a\nb\n", capNotATerminal)

	line, err := e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "a", line)

	line, err = e.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "b", line)

	_, err = e.GetLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestInputFdFollowsInjectedReader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	defer f.Close()

	e := NewEditor()
	e.in = f
	assert.Equal(t, int(f.Fd()), e.inputFd())

	// A reader without a descriptor falls back to stdin.
	e.in = strings.NewReader("")
	assert.Equal(t, int(os.Stdin.Fd()), e.inputFd())
}

func TestIsIncapableTerm(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"dumb", true},
		{"DUMB", true},
		{"cons25", true},
		{"xterm-256color", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isIncapableTerm(tc.name), "TERM=%q", tc.name)
	}
}

func TestAddToHistoryRejectsDuplicateOfNewest(t *testing.T) {
	e := NewEditor()
	assert.True(t, e.AddToHistory("one"))
	assert.False(t, e.AddToHistory("one"))
	assert.True(t, e.AddToHistory("two"))
	assert.True(t, e.AddToHistory("one"))
}

func TestSetHistoryCapacityRejectsZero(t *testing.T) {
	e := NewEditor()
	assert.Error(t, e.SetHistoryCapacity(0))
	assert.NoError(t, e.SetHistoryCapacity(1))
}

func TestSaveLoadHistoryThroughEditor(t *testing.T) {
	path := t.TempDir() + "/history"

	e := NewEditor()
	e.AddToHistory("one")
	e.AddToHistory("two")
	require.NoError(t, e.SaveHistory(path))

	e2 := NewEditor()
	require.NoError(t, e2.LoadHistory(path))
	assert.Equal(t, []string{"one", "two"}, e2.history.entries)
}

func TestClearScreen(t *testing.T) {
	out := &bytes.Buffer{}
	e := NewEditor()
	e.out = out
	e.ClearScreen()
	assert.Equal(t, "\x1b[H\x1b[2J", out.String())
}
