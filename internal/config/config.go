// Package config loads the calculator's configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	LogFile string `yaml:"log_file"` // calculation log path (default: nmri.log)
	Logging bool   `yaml:"logging"`  // start with logging enabled
	NoColor bool   `yaml:"no_color"` // disable styled output
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "nmri", "config.yaml")
}

// Load reads a YAML config file, unmarshals it into Config, and applies
// defaults. A missing file is not an error; it yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.LogFile == "" {
		cfg.LogFile = "nmri.log"
	}
}
