// Package config loads the account-type catalog and instrument tables from
// YAML. A built-in default configuration is embedded so the binary works
// without any external file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
)

//go:embed default.yaml
var defaultYAML []byte

// AccountTypeConfig is the YAML shape of one account type.
type AccountTypeConfig struct {
	Leverage            float64 `yaml:"leverage"`
	MinTradingDays      int     `yaml:"min_trading_days"`
	NewsAddonAllowed    bool    `yaml:"news_addon_allowed"`
	WeekendAddonAllowed bool    `yaml:"weekend_addon_allowed"`
}

// QualityConfig holds normalization thresholds.
type QualityConfig struct {
	MinValidPercent float64 `yaml:"min_valid_percent"`
}

// InstrumentConfig holds the per-instrument market tables.
type InstrumentConfig struct {
	ValuePerPoint map[string]float64 `yaml:"value_per_point"`
	ContractSizes map[string]float64 `yaml:"contract_sizes"`
}

// Config is the full application configuration.
type Config struct {
	AccountTypes map[string]AccountTypeConfig `yaml:"account_types"`
	Quality      QualityConfig                `yaml:"quality"`
	Instruments  InstrumentConfig             `yaml:"instruments"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return parse(defaultYAML)
}

// Load reads a configuration file, falling back to the embedded defaults
// for any top-level section the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.AccountTypes) == 0 {
		return fmt.Errorf("no account types configured")
	}
	for name, at := range c.AccountTypes {
		if at.Leverage <= 0 {
			return fmt.Errorf("account type %q: leverage must be positive", name)
		}
		if at.MinTradingDays < 0 {
			return fmt.Errorf("account type %q: min_trading_days must not be negative", name)
		}
	}
	if c.Quality.MinValidPercent < 0 || c.Quality.MinValidPercent > 100 {
		return fmt.Errorf("quality.min_valid_percent must be within [0, 100]")
	}
	return nil
}

// AccountConfig resolves one account type by its label.
func (c *Config) AccountConfig(accountType string) (domain.AccountConfig, error) {
	at, ok := c.AccountTypes[accountType]
	if !ok {
		return domain.AccountConfig{}, fmt.Errorf("unknown account type %q", accountType)
	}
	return domain.AccountConfig{
		AccountType:         accountType,
		Leverage:            at.Leverage,
		MinTradingDays:      at.MinTradingDays,
		NewsAddonAllowed:    at.NewsAddonAllowed,
		WeekendAddonAllowed: at.WeekendAddonAllowed,
	}, nil
}

// Catalog builds the market catalog from the instrument tables.
func (c *Config) Catalog() *market.Catalog {
	return market.NewCatalog(c.Instruments.ValuePerPoint, c.Instruments.ContractSizes)
}
