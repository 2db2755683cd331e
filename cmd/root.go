package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/config"
	"github.com/theirongolddev/jars/internal/model"
	"github.com/theirongolddev/jars/internal/tui/theme"
)

var (
	flagIncome   float64
	flagFixed    bool
	flagPercents string
	flagTheme    string
	flagJSON     bool
	flagChart    string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "jars",
	Short: "Six-jar budget calculator",
	Long: "Split a monthly net income across six jars: Necessities, Financial Freedom,\n" +
		"Long-Term Savings, Education, Play and Give.",
	Example: "  jars --income 4666\n" +
		"  jars -i 4666 -p 60,15,12,12,10,1\n" +
		"  jars --fixed --income 5000 --chart donut",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagFixed, "fixed", false, "Use the fixed 55/10/10/10/10/5 split")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme (dark, light)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.Flags().Float64VarP(&flagIncome, "income", "i", 0, "Monthly net income (default depends on mode)")
	rootCmd.Flags().StringVarP(&flagPercents, "percents", "p", "", "Six comma-separated percents, e.g. 50,15,12,12,10,1")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	rootCmd.Flags().StringVar(&flagChart, "chart", "bar", "Chart style: bar, donut or none")
}

// setup configures logging and the theme before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg := loadConfig()
	name := flagTheme
	if name == "" {
		name = config.GetTheme(cfg)
	}
	if !theme.Valid(name) {
		log.Warn().Str("theme", name).Msg("unknown theme, using dark")
	}
	theme.SetActive(name)

	log.Debug().Str("command", cmd.Name()).Str("theme", theme.Active.Name).Msg("starting")
	return nil
}

// loadConfig loads the config file, falling back to defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.ConfigPath()).Msg("config unreadable, using defaults")
	}
	return cfg
}

// resolveMode picks the mode: --fixed wins, then JARS_MODE, then the config.
func resolveMode(cfg config.Config) (model.Mode, error) {
	if flagFixed {
		return model.ModeFixed, nil
	}
	return config.GetMode(cfg)
}
