// Package ui provides the terminal styling for the inquiry CLI output.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors shared across commands.
var (
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Error   = lipgloss.Color("#e53935")
	Accent  = lipgloss.Color("#2196F3")
	Muted   = lipgloss.Color("#808080")
)

var (
	// HeaderStyle renders section headings.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// SuccessStyle marks completed operations.
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// WarnStyle marks skipped or degraded operations.
	WarnStyle = lipgloss.NewStyle().Foreground(Warning)

	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// CurrentStyle highlights the feature in progress.
	CurrentStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	// MutedStyle de-emphasizes secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)

// Rule returns a horizontal divider of the given width.
func Rule(width int) string {
	return MutedStyle.Render(strings.Repeat("=", width))
}

// Bar renders a count gauge capped at 20 cells.
func Bar(count int) string {
	n := count
	if n > 20 {
		n = 20
	}
	return SuccessStyle.Render(strings.Repeat("█", n))
}

// Checkmark prefixes a line with a styled success marker.
func Checkmark(text string) string {
	return fmt.Sprintf("%s %s", SuccessStyle.Render("✓"), text)
}

// Warnmark prefixes a line with a styled warning marker.
func Warnmark(text string) string {
	return fmt.Sprintf("%s %s", WarnStyle.Render("!"), text)
}

// RenderMarkdown renders markdown for the terminal. On any renderer error the
// raw markdown is returned unchanged.
func RenderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
