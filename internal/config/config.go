package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a caja data directory.
const FileName = "caja.yaml"

// Config represents the top-level caja.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the shop.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// LedgerConfig controls categorization of sales.
type LedgerConfig struct {
	// FallbackCategory receives sales without a category and sales
	// whose category was deleted.
	FallbackCategory string   `yaml:"fallback_category"`
	Categories       []string `yaml:"categories"`
}

// GitConfig controls auto-committing the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a caja.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Ledger.FallbackCategory == "" {
		cfg.Ledger.FallbackCategory = defaultFallback
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

const defaultFallback = "Otros"

// Default returns a Config with sensible defaults for a new shop.
func Default(shopName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: shopName},
		Ledger: LedgerConfig{
			FallbackCategory: defaultFallback,
			Categories: []string{
				"Pan",
				"Fiambres",
				"Bebidas con alcohol",
				"Bebidas sin alcohol",
				"Golosinas",
				"Galletitas",
				"Kiosco",
				defaultFallback,
			},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Caja",
			AuthorEmail: "caja@localhost",
		},
	}
}
