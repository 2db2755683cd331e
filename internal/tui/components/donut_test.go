package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestAngleFracClockwiseFromTop(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   float64
	}{
		{0, -1, 0},    // 12 o'clock
		{1, 0, 0.25},  // 3 o'clock
		{0, 1, 0.5},   // 6 o'clock
		{-1, 0, 0.75}, // 9 o'clock
	}
	for _, tt := range tests {
		if got := angleFrac(tt.dx, tt.dy); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("angleFrac(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestSliceAt(t *testing.T) {
	bounds := []float64{0.5, 0.5, 0.75, 1}
	tests := []struct {
		frac float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 2}, // empty slice 1 is skipped
		{0.8, 3},
		{1, 3},
	}
	for _, tt := range tests {
		if got := sliceAt(bounds, tt.frac); got != tt.want {
			t.Errorf("sliceAt(%v) = %d, want %d", tt.frac, got, tt.want)
		}
	}
}

func TestDonutDimensions(t *testing.T) {
	plainOutput(t)

	out := Donut([]Slice{{Label: "A", Value: 1, Color: "#FF0000"}}, 5, DefaultHole, "")
	lines := strings.Split(out, "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d rows, want 11", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 22 {
			t.Errorf("row %d width = %d, want 22", i, w)
		}
	}
	if !strings.Contains(out, "█") {
		t.Error("filled donut should contain ring cells")
	}
	if !strings.Contains(out, "100%") {
		t.Error("single slice should be labeled 100%")
	}
}

func TestDonutZeroTotalIsDimRing(t *testing.T) {
	plainOutput(t)

	out := Donut([]Slice{{Label: "A", Value: 0}, {Label: "B", Value: 0}}, 5, DefaultHole, "")
	if strings.Contains(out, "█") {
		t.Error("zero total should not draw filled cells")
	}
	if !strings.Contains(out, "░") {
		t.Error("zero total should draw the dim ring")
	}
}

func TestDonutHoleIsEmpty(t *testing.T) {
	plainOutput(t)

	out := Donut([]Slice{{Label: "A", Value: 1}}, 7, DefaultHole, "")
	lines := strings.Split(out, "\n")
	mid := []rune(lines[7])
	center := len(mid) / 2
	if mid[center] != ' ' || mid[center-1] != ' ' {
		t.Errorf("center of the donut should be hollow, got %q", string(mid))
	}
}

func TestDonutCenterText(t *testing.T) {
	plainOutput(t)

	out := Donut([]Slice{{Label: "A", Value: 3}, {Label: "B", Value: 1}}, 7, DefaultHole, "4,666 zł")
	if !strings.Contains(out, "4,666 zł") {
		t.Errorf("center text missing:\n%s", out)
	}
}

func TestLegendEmphasis(t *testing.T) {
	plainOutput(t)

	out := Legend([]Slice{
		{Label: "Necessities", Value: 55},
		{Label: "Financial Freedom", Value: 10, Emphasis: true},
		{Label: "Play", Value: 35},
	}, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d legend lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "Necessities") || !strings.Contains(lines[0], "55.0%") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "FINANCIAL FREEDOM") {
		t.Errorf("emphasized label should be upper-cased, got %q", lines[1])
	}
	if strings.Contains(lines[2], "PLAY") {
		t.Errorf("plain label should keep its case, got %q", lines[2])
	}
}
