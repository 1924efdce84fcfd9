package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindHeading
	kindField
	kindSuccess
	kindSystem
	kindError
	kindTrace
)

var (
	successMarkers = []string{
		" wields ", " puts on ", " joins the party", " is revived ",
		" receives ", " uses ", "Created ",
	}
	errorPrefixes = []string{
		"There is no", "There is nothing", "I don't know", "Cannot create",
		"Invalid", "Which ", "Usage:",
	}
	errorMarkers = []string{
		" already ", " is dead", " cannot wield ", " is not something to ",
		" is not carrying ", " falls.",
	}
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
		return kindHeading
	case hasAnyPrefix(line, errorPrefixes) || containsAny(line, errorMarkers):
		return kindError
	case containsAny(line, successMarkers):
		return kindSuccess
	case isField(line):
		return kindField
	default:
		return kindNarration
	}
}

// isField reports whether line is a "Label: value" row of a sheet or
// item description.
func isField(line string) bool {
	label, _, ok := strings.Cut(line, ": ")
	if !ok || label == "" || strings.HasPrefix(label, " ") {
		return false
	}
	return !strings.ContainsAny(label, ".,!?")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// styledField renders "Label: value" with the label colored.
func styledField(line string) string {
	label, value, ok := strings.Cut(line, ": ")
	if !ok {
		return styleNarration.Render(line)
	}
	return styleLabel.Render(label+":") + " " + styleNarration.Render(value)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
