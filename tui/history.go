// Package tui provides a Bubble Tea terminal UI for the questrpg game.
package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	max     int
	pos     int // len(entries) when not navigating
}

// NewHistory creates a history holding at most max commands.
func NewHistory(max int) *History {
	return &History{entries: make([]string, 0, max), max: max}
}

// Push records cmd, dropping the oldest entry when full. Repeating the
// last command does not add a new entry.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		h.pos = n
		return
	}
	if len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max-1]
	}
	h.entries = append(h.entries, cmd)
	h.pos = len(h.entries)
}

// Prev steps back to an older command. It stays on the oldest one and
// reports false only when history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward to a newer command. Stepping past the newest
// returns to fresh input and reports false.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", false
	}
	return h.entries[h.pos], true
}

// Reset leaves navigation.
func (h *History) Reset() {
	h.pos = len(h.entries)
}

// Len is the number of stored commands.
func (h *History) Len() int { return len(h.entries) }
