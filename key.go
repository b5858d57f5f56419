package lined

import (
	"io"
	"unicode/utf8"
)

// command is the closed set of logical edit operations a key press can
// resolve to.
type command int

const (
	cmdNone command = iota
	cmdInsert
	cmdMoveLeft
	cmdMoveRight
	cmdMoveHome
	cmdMoveEnd
	cmdWordLeft
	cmdWordRight
	cmdDeleteForward
	cmdDeleteBackward
	cmdDeletePrevWord
	cmdDeleteToEnd
	cmdClearLine
	cmdClearScreen
	cmdHistoryPrev
	cmdHistoryNext
	cmdTranspose
	cmdComplete
	cmdSubmit
	cmdInterrupt
	cmdEOFOrDelete
)

type keyEvent struct {
	cmd command
	ch  rune // set for cmdInsert
}

func ctrl(c rune) byte {
	return byte(c & 0x1f)
}

// keyDecoder turns the raw byte stream into logical commands, one event per
// call. Escape sequences are decoded with bounded lookahead; anything
// unrecognized or cut short mid-sequence is discarded and decoding resumes.
type keyDecoder struct {
	r   io.Reader
	one [1]byte
}

func newKeyDecoder(r io.Reader) *keyDecoder {
	return &keyDecoder{r: r}
}

func (d *keyDecoder) readByte() (byte, error) {
	n, err := d.r.Read(d.one[:])
	if n == 1 {
		return d.one[0], nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, err
}

func (d *keyDecoder) readFull(buf []byte) error {
	for i := range buf {
		c, err := d.readByte()
		if err != nil {
			return err
		}
		buf[i] = c
	}
	return nil
}

// next blocks for the next logical event. An error means the underlying
// read failed and the session must end.
func (d *keyDecoder) next() (keyEvent, error) {
	for {
		c, err := d.readByte()
		if err != nil {
			return keyEvent{}, err
		}

		switch c {
		case ctrl('A'):
			return keyEvent{cmd: cmdMoveHome}, nil
		case ctrl('B'):
			return keyEvent{cmd: cmdMoveLeft}, nil
		case ctrl('C'):
			return keyEvent{cmd: cmdInterrupt}, nil
		case ctrl('D'):
			return keyEvent{cmd: cmdEOFOrDelete}, nil
		case ctrl('E'):
			return keyEvent{cmd: cmdMoveEnd}, nil
		case ctrl('F'):
			return keyEvent{cmd: cmdMoveRight}, nil
		case ctrl('H'), 127:
			return keyEvent{cmd: cmdDeleteBackward}, nil
		case '\t':
			return keyEvent{cmd: cmdComplete}, nil
		case ctrl('K'):
			return keyEvent{cmd: cmdDeleteToEnd}, nil
		case ctrl('L'):
			return keyEvent{cmd: cmdClearScreen}, nil
		case '\r', '\n':
			return keyEvent{cmd: cmdSubmit}, nil
		case ctrl('N'):
			return keyEvent{cmd: cmdHistoryNext}, nil
		case ctrl('P'):
			return keyEvent{cmd: cmdHistoryPrev}, nil
		case ctrl('T'):
			return keyEvent{cmd: cmdTranspose}, nil
		case ctrl('U'):
			return keyEvent{cmd: cmdClearLine}, nil
		case ctrl('W'):
			return keyEvent{cmd: cmdDeletePrevWord}, nil
		case 0x1b:
			ev, err := d.escape()
			if err != nil {
				return keyEvent{}, err
			}
			if ev.cmd == cmdNone {
				continue
			}
			return ev, nil
		default:
			if c < 0x20 {
				// Remaining control bytes have no binding.
				continue
			}
			if c < utf8.RuneSelf {
				return keyEvent{cmd: cmdInsert, ch: rune(c)}, nil
			}
			ev, err := d.utf8Tail(c)
			if err != nil {
				return keyEvent{}, err
			}
			if ev.cmd == cmdNone {
				continue
			}
			return ev, nil
		}
	}
}

// escape decodes the tail of an ESC-initiated sequence. Recognized forms:
//
//	ESC [ A/B/C/D        history prev/next, cursor right/left
//	ESC [ Z              shift-tab (ignored)
//	ESC [ 3 ~            delete forward
//	ESC [ 1 ; 5 C/D      ctrl-modified word jump right/left
//	ESC O H / ESC O F    home / end
//
// Anything else is dropped.
func (d *keyDecoder) escape() (keyEvent, error) {
	var seq [2]byte
	if err := d.readFull(seq[:]); err != nil {
		return keyEvent{}, err
	}

	switch seq[0] {
	case '[':
		switch seq[1] {
		case 'A':
			return keyEvent{cmd: cmdHistoryPrev}, nil
		case 'B':
			return keyEvent{cmd: cmdHistoryNext}, nil
		case 'C':
			return keyEvent{cmd: cmdMoveRight}, nil
		case 'D':
			return keyEvent{cmd: cmdMoveLeft}, nil
		case 'Z':
			// Shift-tab; recognized so its bytes do not leak into the
			// buffer, but there is no binding for it.
			return keyEvent{cmd: cmdNone}, nil
		default:
			if seq[1] >= '0' && seq[1] <= '9' {
				return d.extendedEscape(seq[1])
			}
			return keyEvent{cmd: cmdNone}, nil
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return keyEvent{cmd: cmdMoveHome}, nil
		case 'F':
			return keyEvent{cmd: cmdMoveEnd}, nil
		}
		return keyEvent{cmd: cmdNone}, nil
	default:
		return keyEvent{cmd: cmdNone}, nil
	}
}

// extendedEscape finishes a CSI sequence whose first parameter byte has
// already been read: the remaining parameter bytes are collected up to the
// final byte, then the few parameterized sequences we care about are
// matched. Everything else is consumed and dropped, so a sequence like
// ESC [ 1 5 ~ cannot leak stray bytes into the buffer.
func (d *keyDecoder) extendedEscape(first byte) (keyEvent, error) {
	params := []byte{first}
	for {
		c, err := d.readByte()
		if err != nil {
			return keyEvent{}, err
		}
		if (c >= '0' && c <= '9') || c == ';' {
			params = append(params, c)
			continue
		}

		switch {
		case c == '~' && string(params) == "3":
			return keyEvent{cmd: cmdDeleteForward}, nil
		// xterm-style modifier encoding; only the ctrl modifier (5) on
		// the arrow finals is handled.
		case c == 'C' && string(params) == "1;5":
			return keyEvent{cmd: cmdWordRight}, nil
		case c == 'D' && string(params) == "1;5":
			return keyEvent{cmd: cmdWordLeft}, nil
		}
		return keyEvent{cmd: cmdNone}, nil
	}
}

// utf8Tail collects the continuation bytes of a multi-byte rune. A malformed
// sequence is discarded rather than inserted.
func (d *keyDecoder) utf8Tail(first byte) (keyEvent, error) {
	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = first
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		c, err := d.readByte()
		if err != nil {
			return keyEvent{}, err
		}
		buf = append(buf, c)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return keyEvent{cmd: cmdNone}, nil
	}
	return keyEvent{cmd: cmdInsert, ch: r}, nil
}
