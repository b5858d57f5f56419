package lined

import (
	"fmt"
	"io"
)

// vtWriter latches the first write error and silently drops everything
// after it. A failed redraw is purely visual; the logical edit state stays
// authoritative, so the error is never surfaced.
type vtWriter struct {
	w   io.Writer
	err error
}

func (v *vtWriter) writeString(s string) {
	if v.err != nil {
		return
	}
	_, v.err = io.WriteString(v.w, s)
}

func (v *vtWriter) writef(format string, args ...interface{}) {
	if v.err != nil {
		return
	}
	_, v.err = fmt.Fprintf(v.w, format, args...)
}

func vtClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, "\x1b[H\x1b[2J")
}

func vtBeep(w io.Writer) {
	_, _ = io.WriteString(w, "\a")
}

// renderer redraws the prompt and buffer after each mutation. It keeps the
// two pieces of drawn state the redraw math needs: the cursor position of
// the previous refresh and, in multi-row mode, the high-water mark of rows
// painted so far.
type renderer struct {
	out         io.Writer
	multiLine   bool
	cols        int
	prompt      string
	promptWidth int

	oldCursor int
	maxRows   int
}

func (r *renderer) refresh(buf *lineBuffer) {
	if r.multiLine {
		r.refreshMultiRow(buf)
	} else {
		r.refreshSingleRow(buf)
	}
}

// refreshSingleRow repaints within one terminal row. When prompt+cursor
// would pass the right edge, a display window slides over the buffer so the
// cursor stays visible; the tail is truncated to fit. No vertical movement
// is ever emitted here.
func (r *renderer) refreshSingleRow(buf *lineBuffer) {
	window := buf.runes
	length := len(window)
	pos := buf.cursor

	for len(window) > 0 && r.promptWidth+pos >= r.cols {
		window = window[1:]
		length--
		pos--
	}
	for length > 0 && r.promptWidth+length > r.cols {
		length--
	}
	// A prompt wider than the terminal leaves no room for the buffer at
	// all; draw what fits rather than sliding past an empty window.
	if pos < 0 {
		pos = 0
	}

	w := &vtWriter{w: r.out}
	w.writeString("\x1b[0G")
	w.writeString(r.prompt)
	w.writeString(string(window[:length]))
	w.writeString("\x1b[0K")
	w.writef("\x1b[0G\x1b[%dC", pos+r.promptWidth)
}

// refreshMultiRow repaints a line that wraps across terminal rows. Rows
// painted by earlier refreshes are cleared bottom-up before the line is
// redrawn from its first row; maxRows only ever grows within a session so a
// shrinking buffer still clears everything it used to cover.
func (r *renderer) refreshMultiRow(buf *lineBuffer) {
	plen := r.promptWidth
	length := len(buf.runes)
	pos := buf.cursor

	rows := (plen + length + r.cols - 1) / r.cols
	oldCursorRow := (plen + r.oldCursor + r.cols) / r.cols
	oldRows := r.maxRows
	if rows > r.maxRows {
		r.maxRows = rows
	}

	w := &vtWriter{w: r.out}

	// Down to the last previously painted row, then clear and climb.
	if oldRows-oldCursorRow > 0 {
		w.writef("\x1b[%dB", oldRows-oldCursorRow)
	}
	for j := 0; j < oldRows-1; j++ {
		w.writeString("\x1b[0G\x1b[0K\x1b[1A")
	}
	w.writeString("\x1b[0G\x1b[0K")

	w.writeString(r.prompt)
	w.writeString(string(buf.runes))

	// Cursor at end-of-buffer on an exact row boundary: force the wrap
	// ourselves so the terminal's own line-wrap cannot desynchronize the
	// row accounting.
	if pos > 0 && pos == length && (pos+plen)%r.cols == 0 {
		w.writeString("\n\x1b[0G")
		rows++
		if rows > r.maxRows {
			r.maxRows = rows
		}
	}

	cursorRow := (plen + pos + r.cols) / r.cols
	if rows-cursorRow > 0 {
		w.writef("\x1b[%dA", rows-cursorRow)
	}
	w.writef("\x1b[%dG", 1+(plen+pos)%r.cols)

	r.oldCursor = pos
}
