package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/jars/internal/tui/theme"
)

// KeyHint is one entry in the status bar's key legend.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// an optional note (mode, theme) on the right.
func RenderStatusBar(width int, hints []KeyHint, note string) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var left strings.Builder
	left.WriteString(spaceStyle.Render(" "))
	for i, h := range hints {
		if i > 0 {
			left.WriteString(spaceStyle.Render("  "))
		}
		left.WriteString(keyStyle.Render("[" + h.Key + "]"))
		left.WriteString(descStyle.Render(h.Desc))
	}

	right := ""
	if note != "" {
		right = noteStyle.Render(note + " ")
	}
	if lipgloss.Width(left.String())+lipgloss.Width(right) > width {
		right = ""
	}

	// Pad middle
	padding := width - lipgloss.Width(left.String()) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left.String() + spaceStyle.Render(strings.Repeat(" ", padding)) + right
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
