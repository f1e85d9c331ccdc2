package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Tokens   TokensConfig   `mapstructure:"tokens"`
	UI       UIConfig       `mapstructure:"ui"`
	Identity IdentityConfig `mapstructure:"identity"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// TokensConfig controls the token list and its safety warnings.
type TokensConfig struct {
	CatalogPath       string  `mapstructure:"catalog_path"`
	WarningsEnabled   bool    `mapstructure:"warnings_enabled"`
	HideSmallBalances bool    `mapstructure:"hide_small_balances"`
	SmallBalanceUSD   float64 `mapstructure:"small_balance_usd"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language       string `mapstructure:"language"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Haptics        bool   `mapstructure:"haptics"`
}

// IdentityConfig tunes name and avatar resolution.
type IdentityConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig points the file logger somewhere; the terminal belongs to the UI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// Path returns where the config file is read from and saved to.
func Path() string {
	if p := os.Getenv("JASKWALLET_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "jaskwallet", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix JASKWALLET_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	home := homeDir()
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "jaskwallet", "jaskwallet.db"))
	v.SetDefault("tokens.catalog_path", "")
	v.SetDefault("tokens.warnings_enabled", true)
	v.SetDefault("tokens.hide_small_balances", false)
	v.SetDefault("tokens.small_balance_usd", 1.0)
	v.SetDefault("ui.language", "en-US")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.haptics", true)
	v.SetDefault("identity.cache_ttl", "10m")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "jaskwallet", "jaskwallet.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("JASKWALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// a missing file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(Path()); statErr == nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The settings screen uses it to persist toggles.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("tokens.catalog_path", cfg.Tokens.CatalogPath)
	v.Set("tokens.warnings_enabled", cfg.Tokens.WarningsEnabled)
	v.Set("tokens.hide_small_balances", cfg.Tokens.HideSmallBalances)
	v.Set("tokens.small_balance_usd", cfg.Tokens.SmallBalanceUSD)
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.haptics", cfg.UI.Haptics)
	v.Set("identity.cache_ttl", cfg.Identity.CacheTTL.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
