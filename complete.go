package lined

// CompletionProducer supplies candidate continuations for the word
// currently being typed. It receives the text between the last whitespace
// boundary and the cursor, and the candidates it returns are matched
// against that same span.
type CompletionProducer func(prefix string) []string

type completionResult int

const (
	completionNoMatch completionResult = iota
	completionInserted
	completionListed
)

// completeWord runs one completion request. A single valid candidate has
// its remaining characters plus a trailing space inserted; several valid
// candidates are listed and the buffer is left untouched (deliberately no
// common-prefix insertion in the ambiguous case); none rings the bell.
func completeWord(s *session) completionResult {
	start := s.wordStart
	if start > s.buf.cursor {
		start = s.buf.cursor
	}
	typed := s.buf.runes[start:s.buf.cursor]

	candidates := s.ed.producer(string(typed))
	if len(candidates) == 0 {
		vtBeep(s.out)
		return completionNoMatch
	}

	var valid []string
	for _, cand := range candidates {
		if matchesTyped(cand, typed) {
			valid = append(valid, cand)
		}
	}

	switch len(valid) {
	case 0:
		vtBeep(s.out)
		return completionNoMatch
	case 1:
		for _, ch := range []rune(valid[0])[len(typed):] {
			s.buf.insert(ch)
		}
		s.buf.insert(' ')
		s.wordStart = s.buf.cursor
		return completionInserted
	default:
		w := &vtWriter{w: s.out}
		w.writeString("\r\n")
		for _, cand := range valid {
			w.writef(" '%s'", cand)
		}
		w.writeString("\r\n")
		return completionListed
	}
}

// matchesTyped reports whether every already-typed character agrees with
// the candidate.
func matchesTyped(candidate string, typed []rune) bool {
	runes := []rune(candidate)
	if len(runes) < len(typed) {
		return false
	}
	for i, ch := range typed {
		if runes[i] != ch {
			return false
		}
	}
	return true
}
