// Package cmd implements the jars CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	mode, err := config.GetMode(cfg)
	if err != nil {
		return err
	}

	fmt.Println("  [General]")
	fmt.Printf("    Mode:   %s%s\n", mode, envNote(config.EnvMode))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:  %s%s\n", config.GetTheme(cfg), envNote(config.EnvTheme))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Addr:   %s%s\n", config.GetAddr(cfg), envNote(config.EnvAddr))
	fmt.Println()

	fmt.Println("  Run `jars setup` to reconfigure.")
	return nil
}

func envNote(key string) string {
	if os.Getenv(key) != "" {
		return fmt.Sprintf("  (from %s)", key)
	}
	return ""
}
