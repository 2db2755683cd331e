// Package config loads and saves jars preferences from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/jars/internal/model"
)

// Environment overrides, checked before the config file.
const (
	EnvMode  = "JARS_MODE"
	EnvTheme = "JARS_THEME"
	EnvAddr  = "JARS_ADDR"
)

// Config holds all jars configuration. It stores preferences only; incomes
// and percents typed by the user are never written here.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Mode string `toml:"mode"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// DefaultAddr is the API listen address when nothing is configured.
const DefaultAddr = "127.0.0.1:8787"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Mode: model.ModeEditable.String(),
		},
		Appearance: AppearanceConfig{
			Theme: "dark",
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jars")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jars")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if _, err := model.ParseMode(cfg.General.Mode); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetMode returns the mode from env var or config, in that order.
func GetMode(cfg Config) (model.Mode, error) {
	if m := os.Getenv(EnvMode); m != "" {
		return model.ParseMode(m)
	}
	return model.ParseMode(cfg.General.Mode)
}

// GetTheme returns the theme name from env var or config, in that order.
func GetTheme(cfg Config) string {
	if t := os.Getenv(EnvTheme); t != "" {
		return t
	}
	return cfg.Appearance.Theme
}

// GetAddr returns the API listen address from env var or config, in that order.
func GetAddr(cfg Config) string {
	if a := os.Getenv(EnvAddr); a != "" {
		return a
	}
	if cfg.Server.Addr != "" {
		return cfg.Server.Addr
	}
	return DefaultAddr
}
