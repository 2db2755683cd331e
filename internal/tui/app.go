// Package tui provides the interactive Bubble Tea calculator for jars.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/jars/internal/budget"
	"github.com/theirongolddev/jars/internal/cli"
	"github.com/theirongolddev/jars/internal/config"
	"github.com/theirongolddev/jars/internal/model"
	"github.com/theirongolddev/jars/internal/tui/components"
	"github.com/theirongolddev/jars/internal/tui/theme"
)

// App is the root Bubble Tea model. It keeps only the raw inputs; the
// allocation is recomputed from them after every change.
type App struct {
	calc     *budget.Calculator
	mode     model.Mode
	income   float64
	percents []int
	result   budget.Result
	err      error

	// UI state
	width    int
	height   int
	cursor   int // 0 = income, 1..6 = jar percents
	showHelp bool

	// Inline value entry
	editing  bool
	input    textinput.Model
	inputErr string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	compactWidth     = 110
	maxContentWidth  = 160

	donutRadius = 7
	legendWidth = 18
)

// Options configures a new App.
type Options struct {
	Mode     model.Mode
	Income   float64 // zero means the mode's default
	Percents []int   // nil means the default split
	Setup    bool    // show the first-run form
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 14
	ti.Prompt = ""

	a := App{
		input:     ti,
		needSetup: opts.Setup,
	}
	a.setMode(opts.Mode)
	if opts.Income > 0 {
		a.income = budget.ClampIncome(opts.Income)
	}
	if len(opts.Percents) == model.JarCount {
		a.percents = budget.ClampPercents(append([]int(nil), opts.Percents...))
	}
	a.recompute()

	if a.needSetup {
		cfg, _ := config.Load()
		a.setupVals = SetupValuesFrom(cfg)
		a.setupForm = NewSetupForm(&a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

// setMode swaps the calculator and resets inputs to the mode's defaults.
func (a *App) setMode(m model.Mode) {
	a.mode = m
	a.calc = budget.NewCalculator(m)
	a.income = model.DefaultIncome(m)
	a.percents = model.DefaultPercentSlice()
	a.cursor = 0
	a.recompute()
}

func (a *App) recompute() {
	res, err := a.calc.Compute(budget.Input{Income: a.income, Percents: a.percents})
	a.result, a.err = res, err
	if err != nil {
		log.Debug().Err(err).Msg("compute failed")
	}
}

// fieldCount is the number of editable fields for the current mode.
func (a App) fieldCount() int {
	if a.mode.Editable() {
		return 1 + model.JarCount
	}
	return 1
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.editing {
			return a.updateInput(msg)
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "?":
			a.showHelp = true
		case "j", "down", "tab":
			a.cursor = (a.cursor + 1) % a.fieldCount()
		case "k", "up", "shift+tab":
			a.cursor = (a.cursor + a.fieldCount() - 1) % a.fieldCount()
		case "+", "=", "l", "right":
			a.step(1)
		case "-", "h", "left":
			a.step(-1)
		case "pgup", "L":
			a.step(10)
		case "pgdown", "H":
			a.step(-10)
		case "enter":
			return a.startEditing()
		case "t":
			theme.Toggle()
		case "r":
			a.setMode(a.mode)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

// step moves the focused field by n steps.
func (a *App) step(n int) {
	if a.cursor == 0 {
		a.income = budget.StepIncome(a.income, n)
	} else if a.mode.Editable() {
		i := a.cursor - 1
		a.percents[i] = budget.StepPercent(a.percents[i], n)
	}
	a.recompute()
}

func (a App) startEditing() (tea.Model, tea.Cmd) {
	a.editing = true
	a.inputErr = ""
	if a.cursor == 0 {
		a.input.SetValue(cli.FormatIncome(a.income))
	} else {
		a.input.SetValue(strconv.Itoa(a.percents[a.cursor-1]))
	}
	a.input.CursorEnd()
	return a, a.input.Focus()
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editing = false
		a.inputErr = ""
		a.input.Blur()
		return a, nil

	case "enter":
		if err := a.commitInput(); err != nil {
			a.inputErr = err.Error()
			return a, nil
		}
		a.editing = false
		a.inputErr = ""
		a.input.Blur()
		a.recompute()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// commitInput parses the typed value into the focused field. Values are
// clamped to the field's range rather than rejected.
func (a *App) commitInput() error {
	val := strings.TrimSpace(a.input.Value())
	if a.cursor == 0 {
		v, err := budget.ParseIncome(val)
		if err != nil {
			return fmt.Errorf("not a number: %s", val)
		}
		a.income = v
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSuffix(val, "%"))
	if err != nil {
		return fmt.Errorf("not a whole percent: %s", val)
	}
	a.percents[a.cursor-1] = budget.ClampPercent(n)
	return nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := a.saveSetupConfig(); err != nil {
			log.Warn().Err(err).Msg("could not save setup")
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  jars needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"j k", "Next / previous field"},
		{"+ - ← →", "Step the field (income ±100, percent ±1)"},
		{"L H", "Step by ten"},
		{"Enter", "Type a value"},
		{"Esc", "Cancel typing"},
		{"t", "Toggle dark / light"},
		{"r", "Reset to defaults"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	if !a.mode.Editable() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Fixed mode: only the income can change."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	var b strings.Builder
	b.WriteString(a.viewHeader(cw))
	b.WriteString("\n")
	b.WriteString(components.MetricCardRow(a.metrics(), cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.viewJarsCard(cw))
		b.WriteString("\n")
		b.WriteString(a.viewChartCard(cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.viewJarsCard(widths[0]),
			a.viewChartCard(widths[1]),
		}))
	}

	content := b.String()

	// Pad the body so the status bar sits on the last line
	statusBar := components.RenderStatusBar(w, a.keyHints(), a.mode.String()+" · "+t.Name)
	if a.height > 1 {
		content = padHeight(truncateHeight(content, a.height-1), a.height-1)
	}

	return fillLinesWithBackground(content, w, t.Background) + "\n" + statusBar
}

func (a App) viewHeader(w int) string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	pillStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true).Padding(0, 1)

	left := logoStyle.Render(" ◈ jars") + subStyle.Render(" · six-jar budget")
	right := pillStyle.Render(strings.ToUpper(a.mode.String()))
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + subStyle.Render(strings.Repeat(" ", gap)) + right
}

func (a App) metrics() []components.Metric {
	t := theme.Active

	income := components.Metric{Label: "Income", Value: cli.FormatMoney(a.result.Income)}

	if a.result.Validation == nil {
		return []components.Metric{
			income,
			{Label: "Allocated", Value: cli.FormatMoney(a.allocatedTotal()), Hint: "fixed split"},
			{Label: "Status", Value: "Fixed 55/10/10/10/10/5", Color: t.Green},
		}
	}

	v := *a.result.Validation
	status := components.Metric{Label: "Status", Value: strings.ReplaceAll(v.State.String(), "_", " ")}
	switch v.State {
	case budget.StateOverLimit:
		status.Color = t.Red
		status.Hint = fmt.Sprintf("remove %d%%", v.Excess)
	case budget.StateUnderfilled:
		status.Color = t.Orange
		status.Hint = fmt.Sprintf("%d%% left", v.Remainder)
	default:
		status.Color = t.Green
	}

	allocated := components.Metric{Label: "Allocated", Value: "—", Hint: cli.FormatPercent(v.Total)}
	if a.result.Allocation != nil {
		allocated.Value = cli.FormatMoney(a.allocatedTotal())
	}

	return []components.Metric{income, allocated, status}
}

func (a App) allocatedTotal() decimal.Decimal {
	if a.result.Allocation == nil {
		return decimal.Zero
	}
	return a.result.Allocation.Total
}

func (a App) keyHints() []components.KeyHint {
	if a.editing {
		return []components.KeyHint{
			{Key: "Enter", Desc: " save"},
			{Key: "Esc", Desc: " cancel"},
		}
	}
	hints := []components.KeyHint{{Key: "j/k", Desc: " move"}}
	if a.mode.Editable() || a.cursor == 0 {
		hints = append(hints, components.KeyHint{Key: "+/-", Desc: " step"}, components.KeyHint{Key: "Enter", Desc: " type"})
	}
	return append(hints,
		components.KeyHint{Key: "t", Desc: "heme"},
		components.KeyHint{Key: "r", Desc: "eset"},
		components.KeyHint{Key: "?", Desc: "help"},
		components.KeyHint{Key: "q", Desc: "uit"},
	)
}

func (a App) viewJarsCard(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	amountW := 16
	pctW := 6
	nameW := innerW - amountW - pctW - 4
	if nameW < 12 {
		nameW = 12
	}

	var amounts []string
	if a.result.Allocation != nil {
		for _, l := range a.result.Allocation.Lines {
			amounts = append(amounts, cli.FormatMoney(l.Amount))
		}
	}

	line := func(focused bool, name, pct, amount string, nameColor lipgloss.Color, bold bool) string {
		marker := "  "
		style := rowStyle
		if focused {
			marker = "▸ "
			style = focusStyle
		}
		ns := style.Foreground(nameColor).Bold(bold || focused)
		if a.editing && focused {
			pct = a.input.View()
		}
		return style.Render(marker) +
			ns.Render(fmt.Sprintf("%-*s", nameW, truncStr(name, nameW))) +
			style.Render(" "+padLeft(pct, pctW)+" ") +
			style.Render(padLeft(amount, amountW))
	}

	var b strings.Builder
	b.WriteString(line(a.cursor == 0, "Income", "", cli.FormatIncome(a.income)+cli.CurrencySuffix, t.TextPrimary, false))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for i, j := range a.calc.Jars() {
		pct := cli.FormatPercent(a.percents[i])
		if !a.mode.Editable() {
			pct = model.FixedFractions[i].Shift(2).String() + "%"
		}
		amount := "—"
		if amounts != nil {
			amount = amounts[i]
		}
		name := j.Title
		if j.Emphasized() {
			name = strings.ToUpper(name)
		}
		b.WriteString(line(a.mode.Editable() && a.cursor == i+1, name, pct, amount, lipgloss.Color(j.Color), j.Emphasized()))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	if a.inputErr != "" {
		b.WriteString(errStyle.Render(a.inputErr))
		b.WriteString("\n")
	}

	if v := a.result.Validation; v != nil {
		b.WriteString(components.AllocatedBar("Allocated", v.Total, 10, innerW-16))
		b.WriteString("\n")
		b.WriteString(a.renderStatus(*v))
	} else {
		b.WriteString(mutedStyle.Render("Fixed split, percents are read-only."))
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(a.err.Error()))
	}

	title := "Jars"
	if a.editing {
		return components.FocusedCard(title, b.String(), outerW)
	}
	return components.ContentCard(title, b.String(), outerW)
}

func (a App) renderStatus(v budget.Validation) string {
	t := theme.Active
	switch v.State {
	case budget.StateOverLimit:
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).Render("⛔ " + v.Message())
	case budget.StateUnderfilled:
		return lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("⚠ " + v.Message())
	default:
		return lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("✓ " + v.Message())
	}
}

func (a App) viewChartCard(outerW int) string {
	t := theme.Active

	if a.result.Blocked() {
		msgStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		body := "\n" + msgStyle.Render(a.result.Validation.Message()) + "\n\n" +
			hintStyle.Render("Amounts and the chart return once the jars add up to 100% or less.")
		return components.ContentCard("Allocation", body, outerW)
	}

	slices := a.slices()
	center := ""
	if a.result.Allocation != nil {
		center = cli.FormatAmount(a.result.Allocation.Total)
	}
	donut := components.Donut(slices, donutRadius, components.DefaultHole, center)
	legend := components.Legend(slices, legendWidth)

	innerW := components.CardInnerWidth(outerW)
	var body string
	if lipgloss.Width(donut)+lipgloss.Width(legend)+2 <= innerW {
		gap := lipgloss.NewStyle().Background(t.Surface).Render("  ")
		body = lipgloss.JoinHorizontal(lipgloss.Center, donut, gap, legend)
	} else {
		body = donut + "\n\n" + legend
	}
	return components.ContentCard("Allocation", body, outerW)
}

// slices maps the current allocation onto chart segments.
func (a App) slices() []components.Slice {
	if a.result.Allocation == nil {
		return nil
	}
	out := make([]components.Slice, 0, len(a.result.Allocation.Lines))
	for _, l := range a.result.Allocation.Lines {
		out = append(out, components.Slice{
			Label:    l.Jar.Title,
			Short:    l.Jar.Code,
			Value:    l.Amount.InexactFloat64(),
			Color:    lipgloss.Color(l.Jar.Color),
			Emphasis: l.Jar.Emphasized(),
		})
	}
	return out
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func padLeft(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
