package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/cli"
	"github.com/theirongolddev/jars/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the six jars with their default splits",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	jars := model.Jars()

	rows := make([][]string, 0, len(jars))
	colors := make([]lipgloss.Color, 0, len(jars))
	for i, j := range jars {
		name := j.Title
		if j.Emphasized() {
			name = strings.ToUpper(name)
		}
		rows = append(rows, []string{
			name,
			j.Code,
			j.Description,
			j.Color,
			cli.FormatPercent(model.DefaultPercents[i]),
			model.FixedFractions[i].Shift(2).String() + "%",
		})
		colors = append(colors, lipgloss.Color(j.Color))
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     "Jars",
		Headers:   []string{"Jar", "Code", "For", "Color", "Editable", "Fixed"},
		Rows:      rows,
		RowColors: colors,
	}))
	fmt.Println()
	return nil
}
