package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/config"
	"github.com/theirongolddev/jars/internal/tui"
)

var (
	flagTUIIncome   float64
	flagTUIPercents string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive calculator",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().Float64VarP(&flagTUIIncome, "income", "i", 0, "Starting income (default depends on mode)")
	tuiCmd.Flags().StringVarP(&flagTUIPercents, "percents", "p", "", "Starting percents, e.g. 50,15,12,12,10,1")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	mode, err := resolveMode(loadConfig())
	if err != nil {
		return err
	}

	percents, err := percentsFlag(mode, flagTUIPercents)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Mode:     mode,
		Income:   flagTUIIncome,
		Percents: percents,
		Setup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
