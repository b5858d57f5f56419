package lined

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const defaultHistoryCapacity = 100

type historyDirection int

const (
	historyNext historyDirection = iota // toward newer entries
	historyPrev                         // toward older entries
)

// history is a capacity-bounded, insertion-ordered list of past lines,
// oldest first. The newest slot doubles as the in-progress line while a
// session is editing.
type history struct {
	entries  []string
	capacity int
}

func newHistory() *history {
	return &history{capacity: defaultHistoryCapacity}
}

func (h *history) size() int {
	return len(h.entries)
}

// add appends line, rejecting a duplicate of the newest entry and evicting
// the oldest entry when at capacity. It reports whether line was added.
func (h *history) add(line string) bool {
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, line)
	return true
}

// setCapacity adjusts the bound, evicting oldest entries when shrinking
// below the current size.
func (h *history) setCapacity(n int) error {
	if n < 1 {
		return fmt.Errorf("lined: history capacity must be at least 1, got %d", n)
	}
	if len(h.entries) > n {
		h.entries = append(h.entries[:0], h.entries[len(h.entries)-n:]...)
	}
	h.capacity = n
	return nil
}

// navigate steps the navigation index (0 = newest) toward dir. Before
// moving it writes current into the slot at idx, so in-progress edits
// survive paging away and back. At either boundary the index clamps and
// moved is false.
func (h *history) navigate(idx int, dir historyDirection, current string) (text string, newIdx int, moved bool) {
	if len(h.entries) <= 1 {
		return "", idx, false
	}
	h.entries[len(h.entries)-1-idx] = current

	if dir == historyPrev {
		idx++
	} else {
		idx--
	}
	if idx < 0 {
		return "", 0, false
	}
	if idx >= len(h.entries) {
		return "", len(h.entries) - 1, false
	}
	return h.entries[len(h.entries)-1-idx], idx, true
}

// pushPlaceholder appends the in-progress session slot unconditionally.
// It must not go through add: when the newest committed entry is itself
// empty, the dedupe there would swallow the placeholder and the drop at
// session end would then delete the real entry.
func (h *history) pushPlaceholder() {
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, "")
}

// dropNewest removes the session placeholder entry.
func (h *history) dropNewest() {
	if len(h.entries) > 0 {
		h.entries = h.entries[:len(h.entries)-1]
	}
}

// save writes one entry per line. Entries containing newlines will not
// survive a reload intact; the format does no escaping.
func (h *history) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lined: save history: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return fmt.Errorf("lined: save history: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("lined: save history: %w", err)
	}
	return nil
}

// load appends each line of the file as one entry. A missing file is not
// an error, and a failed read leaves the in-memory history as it was.
func (h *history) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("lined: load history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.add(strings.TrimRight(scanner.Text(), "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("lined: load history: %w", err)
	}
	return nil
}
