package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/jars/internal/config"
	"github.com/theirongolddev/jars/internal/model"
	"github.com/theirongolddev/jars/internal/tui/theme"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	Mode  string
	Theme string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Mode:  cfg.General.Mode,
		Theme: cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run form. It is also used by `jars setup`.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to jars").
				Description("Split a monthly income across six jars.\nThese preferences can be changed later with `jars setup`."),
			huh.NewSelect[string]().
				Title("Mode").
				Description("Editable lets you set every jar's percent; fixed uses the classic 55/10/10/10/10/5 split.").
				Options(
					huh.NewOption("Editable percents", model.ModeEditable.String()),
					huh.NewOption("Fixed split", model.ModeFixed.String()),
				).
				Value(&vals.Mode),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	m, err := model.ParseMode(v.Mode)
	if err != nil {
		return err
	}
	if !theme.Valid(v.Theme) {
		return fmt.Errorf("unknown theme %q", v.Theme)
	}
	cfg.General.Mode = m.String()
	cfg.Appearance.Theme = v.Theme
	return nil
}

// saveSetupConfig persists the setup answers and applies them to the app.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)
	if m, err := model.ParseMode(cfg.General.Mode); err == nil && m != a.mode {
		a.setMode(m)
	}

	return config.Save(cfg)
}
