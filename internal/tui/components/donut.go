package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/jars/internal/tui/theme"
)

// DefaultHole is the inner radius of the donut as a fraction of the outer one.
const DefaultHole = 0.45

// Slice is one proportional segment of a donut chart.
type Slice struct {
	Label    string
	Short    string // used inside the ring; falls back to Label
	Value    float64
	Color    lipgloss.Color
	Emphasis bool // long-term savings jars get louder labels
}

type cell struct {
	ch   rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

// Donut renders slices as a ring drawn clockwise from 12 o'clock. Terminal
// cells are twice as tall as wide, so each row spans two columns per unit.
// center is printed inside the hole when it fits.
func Donut(slices []Slice, radius int, hole float64, center string) string {
	t := theme.Active
	if radius < 2 {
		radius = 2
	}
	if hole < 0 || hole >= 1 {
		hole = DefaultHole
	}

	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	// Cumulative boundaries in [0,1]
	bounds := make([]float64, len(slices))
	acc := 0.0
	for i, s := range slices {
		if total > 0 && s.Value > 0 {
			acc += s.Value / total
		}
		bounds[i] = acc
	}

	rows := 2*radius + 1
	cols := 4*radius + 2
	cx := float64(cols-1) / 2
	cy := float64(radius)
	edge := 1 + 0.5/float64(radius)

	grid := make([][]cell, rows)
	inRing := make([][]bool, rows)
	for y := 0; y < rows; y++ {
		grid[y] = make([]cell, cols)
		inRing[y] = make([]bool, cols)
		for x := 0; x < cols; x++ {
			dx := (float64(x) - cx) / 2
			dy := float64(y) - cy
			norm := math.Hypot(dx, dy) / float64(radius)
			if norm < hole || norm > edge {
				grid[y][x] = cell{ch: ' ', bg: t.Surface}
				continue
			}
			inRing[y][x] = true
			if total == 0 {
				grid[y][x] = cell{ch: '░', fg: t.TextDim, bg: t.Surface}
				continue
			}
			idx := sliceAt(bounds, angleFrac(dx, dy))
			c := slices[idx].Color
			grid[y][x] = cell{ch: '█', fg: c, bg: c}
		}
	}

	if total > 0 {
		placeSliceLabels(grid, inRing, slices, bounds, total, radius, hole, cx, cy)
	}
	if center != "" {
		placeCenter(grid, inRing, center, int(math.Round(cy)), cx)
	}

	return renderCells(grid)
}

// angleFrac returns the clockwise angle from 12 o'clock as a fraction of a turn.
func angleFrac(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}

func sliceAt(bounds []float64, frac float64) int {
	for i, b := range bounds {
		if frac < b {
			return i
		}
	}
	// Rounding at the very end of the turn
	for i := len(bounds) - 1; i >= 0; i-- {
		if i == 0 || bounds[i] > bounds[i-1] {
			return i
		}
	}
	return 0
}

func placeSliceLabels(grid [][]cell, inRing [][]bool, slices []Slice, bounds []float64, total float64, radius int, hole, cx, cy float64) {
	t := theme.Active
	rm := (hole + 1) / 2 * float64(radius)
	taken := make([][]bool, len(grid))
	for y := range taken {
		taken[y] = make([]bool, len(grid[y]))
	}

	start := 0.0
	for i, s := range slices {
		end := bounds[i]
		share := s.Value / total
		if s.Value <= 0 || share < 0.04 {
			start = end
			continue
		}

		text := fmt.Sprintf("%.0f%%", share*100)
		if s.Emphasis {
			short := s.Short
			if short == "" {
				short = s.Label
			}
			text = strings.ToUpper(short) + " " + text
		}
		mid := (start + end) / 2 * 2 * math.Pi
		y := int(math.Round(cy - math.Cos(mid)*rm))
		x0 := int(math.Round(cx+math.Sin(mid)*rm*2)) - len([]rune(text))/2

		if !fits(inRing, taken, y, x0, text) && s.Emphasis {
			// Fall back to the bare percent when the loud label does not fit
			text = fmt.Sprintf("%.0f%%", share*100)
			x0 = int(math.Round(cx+math.Sin(mid)*rm*2)) - len([]rune(text))/2
		}
		if fits(inRing, taken, y, x0, text) {
			for k, r := range []rune(text) {
				grid[y][x0+k] = cell{ch: r, fg: t.ChartLabel, bg: s.Color, bold: s.Emphasis}
				taken[y][x0+k] = true
			}
		}
		start = end
	}
}

func fits(inRing, taken [][]bool, y, x0 int, text string) bool {
	if y < 0 || y >= len(inRing) {
		return false
	}
	n := len([]rune(text))
	if x0 < 0 || x0+n > len(inRing[y]) {
		return false
	}
	for x := x0; x < x0+n; x++ {
		if !inRing[y][x] || taken[y][x] {
			return false
		}
	}
	return true
}

func placeCenter(grid [][]cell, inRing [][]bool, text string, y int, cx float64) {
	t := theme.Active
	runes := []rune(text)
	x0 := int(math.Round(cx)) - len(runes)/2
	if y < 0 || y >= len(grid) || x0 < 0 || x0+len(runes) > len(grid[y]) {
		return
	}
	for x := x0; x < x0+len(runes); x++ {
		if inRing[y][x] {
			return
		}
	}
	for k, r := range runes {
		grid[y][x0+k] = cell{ch: r, fg: t.TextPrimary, bg: t.Surface, bold: true}
	}
}

// renderCells styles runs of identical cells together.
func renderCells(grid [][]cell) string {
	var b strings.Builder
	for y, row := range grid {
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Background(cur.bg).Bold(cur.bold)
			if cur.fg != "" {
				style = style.Foreground(cur.fg)
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x, c := range row {
			if x > 0 && (c.fg != cur.fg || c.bg != cur.bg || c.bold != cur.bold) {
				flush()
			}
			cur = c
			run.WriteRune(c.ch)
		}
		flush()
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Legend renders one line per slice: a color swatch, the label and its share.
func Legend(slices []Slice, labelW int) string {
	t := theme.Active

	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emphStyle := labelStyle.Bold(true)
	shareStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(slices))
	for _, s := range slices {
		share := 0.0
		if total > 0 && s.Value > 0 {
			share = s.Value / total
		}
		style := labelStyle
		label := s.Label
		if s.Emphasis {
			style = emphStyle
			label = strings.ToUpper(label)
		}
		swatch := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■")
		lines = append(lines, swatch+spaceStyle.Render(" ")+
			style.Render(fmt.Sprintf("%-*s", labelW, label))+
			shareStyle.Render(fmt.Sprintf(" %6.1f%%", share*100)))
	}
	return strings.Join(lines, "\n")
}
