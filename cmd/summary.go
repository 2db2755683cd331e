package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/budget"
	"github.com/theirongolddev/jars/internal/cli"
	"github.com/theirongolddev/jars/internal/model"
	"github.com/theirongolddev/jars/internal/server"
	"github.com/theirongolddev/jars/internal/tui/components"
)

func runSummary(cmd *cobra.Command, _ []string) error {
	mode, err := resolveMode(loadConfig())
	if err != nil {
		return err
	}

	income := model.DefaultIncome(mode)
	if cmd.Flags().Changed("income") {
		income = budget.ClampIncome(flagIncome)
	}

	if !validChart(flagChart) {
		return fmt.Errorf("unknown chart style %q (want %s)", flagChart, strings.Join(chartStyles, ", "))
	}

	percents, err := percentsFlag(mode, flagPercents)
	if err != nil {
		return err
	}
	if percents == nil {
		percents = model.DefaultPercentSlice()
	}

	res, err := budget.NewCalculator(mode).Compute(budget.Input{Income: income, Percents: percents})
	if err != nil {
		return err
	}
	log.Debug().
		Str("mode", mode.String()).
		Str("income", res.Income.StringFixed(2)).
		Str("percents", cli.FormatPercents(percents)).
		Bool("blocked", res.Blocked()).
		Msg("computed")

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(server.NewAllocationResponse(res, percents)); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		if flagChart == "donut" && isatty.IsTerminal(os.Stdout.Fd()) {
			// Slices are painted with cell colors only
			lipgloss.SetColorProfile(termenv.TrueColor)
		}
		fmt.Print(renderSummary(res))
	}

	if res.Blocked() {
		return fmt.Errorf("%w: total %d%%", budget.ErrOverLimit, res.Validation.Total)
	}
	return nil
}

var chartStyles = []string{"bar", "donut", "none"}

func validChart(s string) bool {
	return slices.Contains(chartStyles, s)
}

// percentsFlag parses a --percents value for mode. It returns nil when the
// flag is empty, or in fixed mode where the split is not user-editable.
func percentsFlag(mode model.Mode, s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	if !mode.Editable() {
		log.Warn().Msg("--percents is ignored in fixed mode")
		return nil, nil
	}
	percents, err := budget.ParsePercents(s)
	if err != nil {
		return nil, err
	}
	if len(percents) != model.JarCount {
		return nil, fmt.Errorf("%w: got %d, want %d", budget.ErrPercentCount, len(percents), model.JarCount)
	}
	return percents, nil
}

// renderSummary renders the title, the jar table, the status line and the
// chart. An over-limit split renders the corrective message only.
func renderSummary(res budget.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("SIX JARS  %s  %s", cli.FormatMoney(res.Income), strings.ToUpper(res.Mode.String()))))
	b.WriteString("\n\n")

	if res.Blocked() {
		b.WriteString("  ")
		b.WriteString(cli.RenderStatus(*res.Validation))
		b.WriteString("\n\n")
		return b.String()
	}

	alloc := res.Allocation
	rows := make([][]string, 0, len(alloc.Lines)+2)
	colors := make([]lipgloss.Color, 0, len(alloc.Lines))
	for _, l := range alloc.Lines {
		name := l.Jar.Title
		if l.Jar.Emphasized() {
			name = strings.ToUpper(name)
		}
		rows = append(rows, []string{name, l.Jar.Code, l.Share, cli.FormatMoney(l.Amount)})
		colors = append(colors, lipgloss.Color(l.Jar.Color))
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", "", cli.FormatMoney(alloc.Total)})

	b.WriteString(cli.RenderTable(cli.Table{
		Headers:   []string{"Jar", "Code", "Share", "Amount"},
		Rows:      rows,
		RowColors: colors,
	}))
	b.WriteString("\n")

	if res.Validation != nil {
		b.WriteString("  ")
		b.WriteString(cli.RenderStatus(*res.Validation))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(cli.RenderTotal(*alloc))
	b.WriteString("\n\n")

	switch flagChart {
	case "donut":
		b.WriteString(renderDonut(alloc))
		b.WriteString("\n\n")
	case "none":
	case "bar":
		maxAmount := res.Income.InexactFloat64()
		for _, l := range alloc.Lines {
			label := fmt.Sprintf("%-5s %6s", l.Jar.Code, l.Share)
			b.WriteString(cli.RenderHorizontalBar(label, l.Amount.InexactFloat64(), maxAmount, 40, lipgloss.Color(l.Jar.Color)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderDonut(alloc *budget.Allocation) string {
	parts := make([]components.Slice, 0, len(alloc.Lines))
	for _, l := range alloc.Lines {
		parts = append(parts, components.Slice{
			Label:    l.Jar.Title,
			Short:    l.Jar.Code,
			Value:    l.Amount.InexactFloat64(),
			Color:    lipgloss.Color(l.Jar.Color),
			Emphasis: l.Jar.Emphasized(),
		})
	}

	donut := components.Donut(parts, 8, components.DefaultHole, cli.FormatAmount(alloc.Total))
	legend := components.Legend(parts, 18)
	return lipgloss.JoinHorizontal(lipgloss.Center, "  "+strings.ReplaceAll(donut, "\n", "\n  "), "   ", legend)
}
