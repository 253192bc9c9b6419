package server

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/locforge/catdiff/catalog"
)

// Config represents the compared server configuration file structure.
type Config struct {
	// Addr is the TCP listen address for session connections.
	// Can be overridden by CLI flag. Empty means the default address.
	Addr string `yaml:"addr"`

	// MaxKeys caps the number of keys in a loaded document.
	// Zero or negative means the catalog default.
	MaxKeys int `yaml:"maxKeys"`
}

// LoadConfig loads a configuration file. YAML and JSON both parse.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:    "localhost:9311",
		MaxKeys: catalog.DefaultMaxKeys,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxKeys < 0 {
		return fmt.Errorf("maxKeys must not be negative")
	}
	return nil
}
