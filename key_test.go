package lined

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeAll drains the decoder until the input runs out.
func decodeAll(t *testing.T, input string) []keyEvent {
	t.Helper()
	d := newKeyDecoder(strings.NewReader(input))
	var events []keyEvent
	for {
		ev, err := d.next()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return events
		}
		events = append(events, ev)
	}
}

func TestDecodeControlBytes(t *testing.T) {
	tests := []struct {
		input string
		want  command
	}{
		{"\x01", cmdMoveHome},
		{"\x02", cmdMoveLeft},
		{"\x03", cmdInterrupt},
		{"\x04", cmdEOFOrDelete},
		{"\x05", cmdMoveEnd},
		{"\x06", cmdMoveRight},
		{"\x08", cmdDeleteBackward},
		{"\x7f", cmdDeleteBackward},
		{"\t", cmdComplete},
		{"\x0b", cmdDeleteToEnd},
		{"\x0c", cmdClearScreen},
		{"\r", cmdSubmit},
		{"\n", cmdSubmit},
		{"\x0e", cmdHistoryNext},
		{"\x10", cmdHistoryPrev},
		{"\x14", cmdTranspose},
		{"\x15", cmdClearLine},
		{"\x17", cmdDeletePrevWord},
	}
	for _, tt := range tests {
		events := decodeAll(t, tt.input)
		require.Len(t, events, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, events[0].cmd, "input %q", tt.input)
	}
}

func TestDecodePrintableCharacters(t *testing.T) {
	events := decodeAll(t, "ab ")
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, cmdInsert, ev.cmd)
	}
	assert.Equal(t, 'a', events[0].ch)
	assert.Equal(t, 'b', events[1].ch)
	assert.Equal(t, ' ', events[2].ch)
}

func TestDecodeEscapeSequences(t *testing.T) {
	tests := []struct {
		input string
		want  command
	}{
		{"\x1b[A", cmdHistoryPrev},
		{"\x1b[B", cmdHistoryNext},
		{"\x1b[C", cmdMoveRight},
		{"\x1b[D", cmdMoveLeft},
		{"\x1bOH", cmdMoveHome},
		{"\x1bOF", cmdMoveEnd},
		{"\x1b[3~", cmdDeleteForward},
		{"\x1b[1;5C", cmdWordRight},
		{"\x1b[1;5D", cmdWordLeft},
	}
	for _, tt := range tests {
		events := decodeAll(t, tt.input)
		require.Len(t, events, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, events[0].cmd, "input %q", tt.input)
	}
}

func TestDecodeDiscardsUnknownSequences(t *testing.T) {
	// Shift-tab, an unknown CSI with parameters, an unknown modifier
	// combination, and a lone unknown escape tail: all dropped without
	// leaking bytes into the buffer.
	for _, input := range []string{"\x1b[Z", "\x1b[15~", "\x1b[1;2C", "\x1bOQ"} {
		events := decodeAll(t, input+"a")
		require.Len(t, events, 1, "input %q", input)
		assert.Equal(t, cmdInsert, events[0].cmd)
		assert.Equal(t, 'a', events[0].ch)
	}
}

func TestDecodeEscapeConsumesTwoByteTail(t *testing.T) {
	// The escape decoder always takes a two-byte tail, so an unknown
	// tail swallows both bytes.
	events := decodeAll(t, "\x1bxya")
	require.Len(t, events, 1)
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: 'a'}, events[0])
}

func TestDecodeUTF8Runes(t *testing.T) {
	events := decodeAll(t, "é漢a")
	require.Len(t, events, 3)
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: 'é'}, events[0])
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: '漢'}, events[1])
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: 'a'}, events[2])
}

func TestDecodeDiscardsMalformedUTF8(t *testing.T) {
	// A stray continuation byte is not a rune.
	events := decodeAll(t, "\x80a")
	require.Len(t, events, 1)
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: 'a'}, events[0])
}

func TestDecodeReadErrorPropagates(t *testing.T) {
	d := newKeyDecoder(strings.NewReader(""))
	_, err := d.next()
	assert.ErrorIs(t, err, io.EOF)

	// A sequence cut off mid-escape is a read error too.
	d = newKeyDecoder(strings.NewReader("\x1b["))
	_, err = d.next()
	assert.Error(t, err)
}

func TestDecodeSkipsUnboundControlBytes(t *testing.T) {
	// ^G has no binding; decoding resumes at the next byte.
	events := decodeAll(t, "\x07a")
	require.Len(t, events, 1)
	assert.Equal(t, keyEvent{cmd: cmdInsert, ch: 'a'}, events[0])
}
