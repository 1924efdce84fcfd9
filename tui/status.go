package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// party and catalog sizes and where the game is saved.
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" Party: %d | Catalog: %d", len(m.game.Characters()), len(m.game.Catalog()))

	saved := "unsaved"
	if at := m.game.SavedAt(); !at.IsZero() {
		saved = "saved " + at.Local().Format("15:04")
	}
	if m.trace {
		saved += " | trace"
	}

	// Prefer the full save path; fall back to its base name when narrow.
	loc := m.game.Location()
	right := fmt.Sprintf("%s (%s) ", loc, saved)
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = fmt.Sprintf("%s (%s) ", filepath.Base(loc), saved)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
