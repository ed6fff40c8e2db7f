package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the converter settings loaded from a YAML file.
type Config struct {
	// AccountNumbers lists the Guideline account identifiers statements
	// may belong to. Statements for other accounts are rejected.
	AccountNumbers []string `yaml:"account_numbers"`

	// Year overrides the year printed in the statement header.
	Year string `yaml:"year,omitempty"`

	// Tolerance is the absolute reconciliation tolerance in dollars.
	// Zero means the default of 0.01.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	Currency string `yaml:"currency,omitempty"`

	Ledger LedgerConfig `yaml:"ledger"`
	Serve  ServeConfig  `yaml:"serve"`
}

// LedgerConfig controls double-entry rendering.
type LedgerConfig struct {
	// Root is the account the statement belongs to,
	// e.g. "Assets:Guideline:401k".
	Root string `yaml:"root"`

	// FeeAccount receives account fees, e.g. "Expenses:Fees".
	FeeAccount string `yaml:"fee_account,omitempty"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Currency: "USD",
		Ledger:   LedgerConfig{Root: "Assets:Guideline:401k"},
		Serve:    ServeConfig{Addr: ":8080"},
	}
}

// LoadFromFile loads configuration from a YAML file, filling unset fields
// with defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance)
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.Ledger.Root == "" {
		return fmt.Errorf("ledger root account must not be empty")
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
	return nil
}
