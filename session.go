package lined

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// session is the state of one interactive read: the buffer being edited,
// the decoder feeding it, the renderer painting it, and the view into the
// editor's history.
type session struct {
	ed   *Editor
	buf  *lineBuffer
	dec  *keyDecoder
	rend *renderer
	out  io.Writer

	// histIdx is the history navigation index, 0 = newest.
	histIdx int
	// wordStart marks where the word currently being typed begins; the
	// completion engine matches candidates against buffer[wordStart:cursor].
	wordStart int
}

// commandHandlers dispatches decoded commands to edit operations. Commands
// with session-terminating or payload-carrying semantics (submit,
// interrupt, end-of-input, insert, complete) are handled in the edit loop
// itself.
var commandHandlers = map[command]func(*session){
	cmdMoveLeft:       cursorLeft,
	cmdMoveRight:      cursorRight,
	cmdMoveHome:       cursorHome,
	cmdMoveEnd:        cursorEnd,
	cmdWordLeft:       cursorWordLeft,
	cmdWordRight:      cursorWordRight,
	cmdDeleteForward:  eraseForward,
	cmdDeleteBackward: eraseBackward,
	cmdDeletePrevWord: erasePrevWord,
	cmdDeleteToEnd:    eraseToEnd,
	cmdClearLine:      eraseLine,
	cmdClearScreen:    clearScreenAndRedraw,
	cmdHistoryPrev:    recallOlder,
	cmdHistoryNext:    recallNewer,
	cmdTranspose:      transposePrevChars,
}

// edit runs one interactive read against the editor's stream pair. The
// stream is expected to already be in raw mode when it is a terminal.
func (e *Editor) edit(prompt string) (string, error) {
	s := &session{
		ed:  e,
		buf: &lineBuffer{},
		dec: newKeyDecoder(e.in),
		out: e.out,
		rend: &renderer{
			out:         e.out,
			multiLine:   e.multiLine,
			cols:        e.columns(),
			prompt:      prompt,
			promptWidth: runewidth.StringWidth(prompt),
		},
	}

	// The newest history entry mirrors the line being edited. It exists
	// only for the duration of this session and is dropped on every way
	// out; committing the finished line is the caller's call.
	e.history.pushPlaceholder()
	defer e.history.dropNewest()

	promptWriter := &vtWriter{w: s.out}
	promptWriter.writeString(prompt)

	for {
		ev, err := s.dec.next()
		if err != nil {
			return "", fmt.Errorf("lined: read input: %w", err)
		}

		switch ev.cmd {
		case cmdSubmit:
			return s.buf.text(), nil
		case cmdInterrupt:
			return "", ErrInterrupted
		case cmdEOFOrDelete:
			// Ctrl-D: end-of-input on an empty line, forward delete
			// otherwise.
			if s.buf.empty() {
				return "", io.EOF
			}
			eraseForward(s)
		case cmdInsert:
			s.insertRune(ev.ch)
		case cmdComplete:
			if e.producer == nil {
				s.insertRune('\t')
				continue
			}
			if completeWord(s) != completionNoMatch {
				s.refresh()
			}
		default:
			if handler, ok := commandHandlers[ev.cmd]; ok {
				handler(s)
			}
		}
	}
}

func (s *session) refresh() {
	s.rend.refresh(s.buf)
}

func (s *session) insertRune(ch rune) {
	appended, ok := s.buf.insert(ch)
	if !ok {
		return
	}
	if ch == ' ' {
		s.wordStart = s.buf.cursor
	}
	if appended && !s.rend.multiLine && s.rend.promptWidth+s.buf.len() < s.rend.cols {
		// Trivial case: the rune went at the end and still fits on the
		// row, so echo it without repainting the line.
		w := &vtWriter{w: s.out}
		w.writeString(string(ch))
		return
	}
	s.refresh()
}

func (s *session) recall(dir historyDirection) {
	text, idx, moved := s.ed.history.navigate(s.histIdx, dir, s.buf.text())
	s.histIdx = idx
	if !moved {
		return
	}
	s.buf.set(text)
	s.refresh()
}

func cursorLeft(s *session) {
	if s.buf.moveLeft() {
		s.refresh()
	}
}

func cursorRight(s *session) {
	if s.buf.moveRight() {
		s.refresh()
	}
}

func cursorHome(s *session) {
	if s.buf.moveHome() {
		s.refresh()
	}
}

func cursorEnd(s *session) {
	if s.buf.moveEnd() {
		s.refresh()
	}
}

func cursorWordLeft(s *session) {
	if s.buf.wordLeft() {
		s.refresh()
	}
}

func cursorWordRight(s *session) {
	if s.buf.wordRight() {
		s.refresh()
	}
}

func eraseForward(s *session) {
	if s.buf.deleteForward() {
		s.refresh()
	}
}

func eraseBackward(s *session) {
	if s.buf.deleteBackward() {
		s.refresh()
	}
}

func erasePrevWord(s *session) {
	if s.buf.deletePrevWord() {
		s.refresh()
	}
}

func eraseToEnd(s *session) {
	if s.buf.truncateToCursor() {
		s.refresh()
	}
}

func eraseLine(s *session) {
	if s.buf.clear() {
		s.refresh()
	}
}

func transposePrevChars(s *session) {
	if s.buf.transpose() {
		s.refresh()
	}
}

func clearScreenAndRedraw(s *session) {
	vtClearScreen(s.out)
	s.refresh()
}

func recallOlder(s *session) {
	s.recall(historyPrev)
}

func recallNewer(s *session) {
	s.recall(historyNext)
}
