// Package config loads the client configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// APIConfig points the REST repositories at the back office.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config is the full client configuration.
type Config struct {
	API       APIConfig `yaml:"api"`
	Locale    string    `yaml:"locale"`
	LogMode   string    `yaml:"log_mode"`
	ExportDir string    `yaml:"export_dir"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Locale:    "fr",
		LogMode:   "dev",
		ExportDir: ".",
	}
}

// Load reads a YAML config file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the module cannot work with.
func (c Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	return nil
}

// CurrencyLocale returns the display locale, defaulting to French.
func (c Config) CurrencyLocale() entities.Locale {
	return entities.ParseLocale(c.Locale)
}
