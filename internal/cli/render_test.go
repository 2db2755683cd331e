package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/jars/internal/budget"
)

func init() {
	// Plain output keeps widths and substrings easy to assert on
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTableAlignsMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Jar", "Amount"},
		Rows: [][]string{
			{"NEC", "2,333.00 zł"},
			{"---"},
			{"TOTAL", "4,666.00 zł"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, line)
		}
	}
	if !strings.Contains(out, "4,666.00 zł") {
		t.Errorf("total row missing:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderStatusByState(t *testing.T) {
	tests := []struct {
		percents []int
		want     string
	}{
		{[]int{50, 15, 12, 12, 10, 1}, "Perfect budget"},
		{[]int{40, 15, 12, 12, 10, 1}, "Left to allocate: 10%"},
		{[]int{60, 15, 12, 12, 10, 1}, "Remove 10%"},
	}
	for _, tc := range tests {
		got := RenderStatus(budget.Validate(tc.percents))
		if !strings.Contains(got, tc.want) {
			t.Errorf("RenderStatus(%v) = %q, want substring %q", tc.percents, got, tc.want)
		}
	}
}

func TestRenderHorizontalBarClampsToWidth(t *testing.T) {
	got := RenderHorizontalBar("NEC", 200, 100, 10, ColorAccent)
	if n := strings.Count(got, "█"); n != 10 {
		t.Fatalf("bar blocks = %d, want 10", n)
	}
	if got := RenderHorizontalBar("NEC", 5, 0, 10, ColorAccent); got != "  NEC" {
		t.Fatalf("zero max = %q", got)
	}
}

func TestRenderTotal(t *testing.T) {
	got := RenderTotal(budget.Allocation{Total: decimal.NewFromInt(4666)})
	if !strings.Contains(got, "4,666.00 zł") {
		t.Fatalf("RenderTotal = %q", got)
	}
}
