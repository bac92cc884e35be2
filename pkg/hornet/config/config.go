package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
)

// Config holds engine settings loaded from a YAML file.
type Config struct {
	// MaxPasses bounds the forward-chaining loop.
	MaxPasses int `yaml:"max_passes"`

	// Match selects premise matching: "all" or "positional".
	Match string `yaml:"match"`

	// RuleFiles are loaded into the KB at startup, in order.
	RuleFiles []string `yaml:"rule_files"`

	// DBPath enables the SQLite store when set; empty means
	// in-memory only.
	DBPath string `yaml:"db_path"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		MaxPasses: 100,
		Match:     "all",
	}
}

// Load reads and validates a YAML config file, filling unset fields
// from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	if c.MaxPasses <= 0 {
		return fmt.Errorf("max_passes must be positive, got %d: %w", c.MaxPasses, internalerr.ErrInvalidConfig)
	}
	switch c.Match {
	case "", "all", "positional":
	default:
		return fmt.Errorf("match must be \"all\" or \"positional\", got %q: %w", c.Match, internalerr.ErrInvalidConfig)
	}
	return nil
}
