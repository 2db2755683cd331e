package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderStatusBarFillsWidth(t *testing.T) {
	plainOutput(t)

	bar := RenderStatusBar(60, []KeyHint{{"q", "uit"}, {"?", "help"}}, "editable")
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
	for _, want := range []string{"[q]uit", "[?]help", "editable"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}
}

func TestAllocatedBarShowsRealTotal(t *testing.T) {
	plainOutput(t)

	out := AllocatedBar("Allocated", 110, 10, 20)
	if !strings.Contains(out, "110%") {
		t.Errorf("over-limit total should be printed as is: %q", out)
	}
	if ColorForTotal(110) == ColorForTotal(100) {
		t.Error("over-limit and exact totals should use different colors")
	}
}

func TestRenderStatusBarDropsNoteWhenNarrow(t *testing.T) {
	plainOutput(t)

	bar := RenderStatusBar(20, []KeyHint{{"q", "uit"}, {"?", "help"}}, "editable · dark")
	if w := lipgloss.Width(bar); w > 20 {
		t.Errorf("status bar width = %d, want at most 20", w)
	}
	if strings.Contains(bar, "editable") {
		t.Errorf("note should be dropped when it does not fit: %q", bar)
	}
}
