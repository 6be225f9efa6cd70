// Package config loads and saves walletkit.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/walletkit/walletkit/internal/log"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/store"
)

// FileName is the config file kept at the root of a wallet directory.
const FileName = "walletkit.yaml"

// EnvPrefix prefixes environment overrides, e.g. WALLETKIT_STORE_BACKEND.
const EnvPrefix = "WALLETKIT"

// Config represents walletkit.yaml.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"` // relative to the wallet directory
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format,omitempty" mapstructure:"format"`
}

// DefaultsConfig seeds the settings of a new wallet.
type DefaultsConfig struct {
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{
		Store:    StoreConfig{Backend: string(store.BackendFile), Path: "data"},
		Log:      LogConfig{Level: "info"},
		Defaults: DefaultsConfig{Currency: string(model.USD)},
	}
}

// Load reads the config file at path. A .env file beside it is loaded into
// the environment first, then WALLETKIT_* variables override file values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := godotenv.Load(filepath.Join(filepath.Dir(path), ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", "text")
	v.SetDefault("defaults.currency", def.Defaults.Currency)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	var errs []error
	if !store.Backend(c.Store.Backend).Valid() {
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if c.Store.Backend != string(store.BackendMemory) && c.Store.Path == "" {
		errs = append(errs, errors.New("store.path: required"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if _, ok := model.ParseCurrency(c.Defaults.Currency); !ok {
		errs = append(errs, fmt.Errorf("defaults.currency: unsupported currency %q", c.Defaults.Currency))
	}
	return errors.Join(errs...)
}

// StorePath resolves Store.Path against the wallet directory.
func (c *Config) StorePath(root string) string {
	if c.Store.Path == "" || filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(root, c.Store.Path)
}

// Currency returns the configured default currency, falling back to USD.
func (c *Config) Currency() model.Currency {
	if cur, ok := model.ParseCurrency(c.Defaults.Currency); ok {
		return cur
	}
	return model.USD
}
