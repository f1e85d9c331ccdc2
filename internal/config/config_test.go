package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("JASKWALLET_CONFIG", filepath.Join(dir, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ".local", "share", "jaskwallet", "jaskwallet.db"), cfg.Database.Path)
	require.True(t, cfg.Tokens.WarningsEnabled)
	require.False(t, cfg.Tokens.HideSmallBalances)
	require.InDelta(t, 1.0, cfg.Tokens.SmallBalanceUSD, 1e-9)
	require.Equal(t, "en-US", cfg.UI.Language)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, 10*time.Minute, cfg.Identity.CacheTTL)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("JASKWALLET_CONFIG", filepath.Join(dir, "conf", "config.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Tokens.WarningsEnabled = false
	cfg.Tokens.HideSmallBalances = true
	cfg.UI.CurrencySymbol = "€"
	cfg.Identity.CacheTTL = 90 * time.Second
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.False(t, again.Tokens.WarningsEnabled)
	require.True(t, again.Tokens.HideSmallBalances)
	require.Equal(t, "€", again.UI.CurrencySymbol)
	require.Equal(t, 90*time.Second, again.Identity.CacheTTL)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("JASKWALLET_CONFIG", filepath.Join(dir, "missing.toml"))
	t.Setenv("JASKWALLET_TOKENS_WARNINGS_ENABLED", "false")
	t.Setenv("JASKWALLET_DATABASE_PATH", "/tmp/other.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Tokens.WarningsEnabled)
	require.Equal(t, "/tmp/other.db", cfg.Database.Path)
}
