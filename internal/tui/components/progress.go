package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/jars/internal/tui/theme"
)

// ColorForTotal maps an allocated total to green (exact), orange (under)
// or red (over).
func ColorForTotal(total int) lipgloss.Color {
	t := theme.Active
	switch {
	case total > 100:
		return t.Red
	case total == 100:
		return t.Green
	default:
		return t.Orange
	}
}

// AllocatedBar renders how much of 100% the jars take up. Totals above 100
// fill the bar and print the real number in red.
func AllocatedBar(label string, total, labelW, barWidth int) string {
	t := theme.Active

	if barWidth < 4 {
		barWidth = 4
	}
	pct := float64(total) / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	color := ColorForTotal(total)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3d%%", total))
}
