package lined

// maxLineLength bounds the edited line; input beyond this is dropped.
const maxLineLength = 4096

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// lineBuffer holds the line being edited and the cursor within it.
// Every operation keeps 0 <= cursor <= len(runes) <= maxLineLength.
type lineBuffer struct {
	runes  []rune
	cursor int
}

func (b *lineBuffer) len() int {
	return len(b.runes)
}

func (b *lineBuffer) empty() bool {
	return len(b.runes) == 0
}

func (b *lineBuffer) text() string {
	return string(b.runes)
}

// set replaces the whole buffer and puts the cursor at the end.
func (b *lineBuffer) set(text string) {
	runes := []rune(text)
	if len(runes) > maxLineLength {
		runes = runes[:maxLineLength]
	}
	b.runes = append(b.runes[:0], runes...)
	b.cursor = len(b.runes)
}

// insert adds ch at the cursor. appended reports whether the rune went at
// the very end of the buffer, which is what makes the caller's single-row
// fast path possible; ok is false when the buffer is full.
func (b *lineBuffer) insert(ch rune) (appended, ok bool) {
	if len(b.runes) >= maxLineLength {
		return false, false
	}
	if b.cursor == len(b.runes) {
		b.runes = append(b.runes, ch)
		b.cursor++
		return true, true
	}
	b.runes = append(b.runes, 0)
	copy(b.runes[b.cursor+1:], b.runes[b.cursor:])
	b.runes[b.cursor] = ch
	b.cursor++
	return false, true
}

func (b *lineBuffer) deleteForward() bool {
	if b.cursor >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
	return true
}

func (b *lineBuffer) deleteBackward() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
	return true
}

// deletePrevWord removes [word-start, cursor): first any spaces directly
// before the cursor, then the word before them.
func (b *lineBuffer) deletePrevWord() bool {
	old := b.cursor
	for b.cursor > 0 && b.runes[b.cursor-1] == ' ' {
		b.cursor--
	}
	for b.cursor > 0 && b.runes[b.cursor-1] != ' ' {
		b.cursor--
	}
	if b.cursor == old {
		return false
	}
	b.runes = append(b.runes[:b.cursor], b.runes[old:]...)
	return true
}

// transpose swaps the character before the cursor with the one under it and
// advances, except when the cursor already sits on the last character.
func (b *lineBuffer) transpose() bool {
	if b.cursor == 0 || b.cursor >= len(b.runes) {
		return false
	}
	b.runes[b.cursor-1], b.runes[b.cursor] = b.runes[b.cursor], b.runes[b.cursor-1]
	if b.cursor != len(b.runes)-1 {
		b.cursor++
	}
	return true
}

func (b *lineBuffer) moveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *lineBuffer) moveRight() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.cursor++
	return true
}

func (b *lineBuffer) moveHome() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor = 0
	return true
}

func (b *lineBuffer) moveEnd() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.cursor = len(b.runes)
	return true
}

// wordRight skips the rest of the current word, then the spaces after it.
func (b *lineBuffer) wordRight() bool {
	old := b.cursor
	for b.cursor < len(b.runes) && !isSpace(b.runes[b.cursor]) {
		b.cursor++
	}
	for b.cursor < len(b.runes) && isSpace(b.runes[b.cursor]) {
		b.cursor++
	}
	return b.cursor != old
}

// wordLeft moves to the first character of the word before the cursor.
func (b *lineBuffer) wordLeft() bool {
	old := b.cursor
	if b.cursor > 0 {
		b.cursor--
	}
	for b.cursor > 0 && isSpace(b.runes[b.cursor]) {
		b.cursor--
	}
	for b.cursor > 0 && !isSpace(b.runes[b.cursor-1]) {
		b.cursor--
	}
	return b.cursor != old
}

// truncateToCursor discards everything from the cursor onward (ctrl-k).
func (b *lineBuffer) truncateToCursor() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.runes = b.runes[:b.cursor]
	return true
}

// clear empties the buffer (ctrl-u).
func (b *lineBuffer) clear() bool {
	if len(b.runes) == 0 && b.cursor == 0 {
		return false
	}
	b.runes = b.runes[:0]
	b.cursor = 0
	return true
}
