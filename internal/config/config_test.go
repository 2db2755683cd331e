package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/jars/internal/model"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvMode, "")
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvAddr, "")
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveThenLoad(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.Mode = "fixed"
	cfg.Appearance.Theme = "light"
	cfg.Server.Addr = "0.0.0.0:9000"
	require.NoError(t, Save(cfg))

	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "jars", "config.toml"), ConfigPath())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	mode, err := GetMode(loaded)
	require.NoError(t, err)
	assert.Equal(t, model.ModeFixed, mode)
}

func TestSaveRejectsUnknownMode(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.Mode = "sometimes"
	err := Save(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidMode)
	assert.False(t, Exists())
}

func TestLoadCorruptFile(t *testing.T) {
	useTempConfigDir(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general\nmode ="), 0o600))

	cfg, err := Load()
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	useTempConfigDir(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[appearance]\ntheme = \"light\"\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Appearance.Theme)
	assert.Equal(t, "editable", cfg.General.Mode)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
}

func TestEnvOverrides(t *testing.T) {
	useTempConfigDir(t)
	cfg := DefaultConfig()

	t.Setenv(EnvMode, "fixed")
	t.Setenv(EnvTheme, "light")
	t.Setenv(EnvAddr, ":1234")

	mode, err := GetMode(cfg)
	require.NoError(t, err)
	assert.Equal(t, model.ModeFixed, mode)
	assert.Equal(t, "light", GetTheme(cfg))
	assert.Equal(t, ":1234", GetAddr(cfg))
}

func TestGetAddrFallsBackToDefault(t *testing.T) {
	useTempConfigDir(t)
	assert.Equal(t, DefaultAddr, GetAddr(Config{}))
}
