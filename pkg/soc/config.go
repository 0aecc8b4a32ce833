package soc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional soc.yaml configuration the CLI and REPL honor.
type Config struct {
	// Precision is read from soc.yaml and must be non-negative. The REPL
	// does not apply it: values are always displayed at full precision.
	Precision int `yaml:"precision,omitempty"`

	// Prompt overrides the REPL prompt.
	Prompt string `yaml:"prompt,omitempty"`

	// Color controls ANSI output: "auto" (default, on when stdout is a
	// terminal), "always" or "never".
	Color string `yaml:"color,omitempty"`

	// Preload lists script files evaluated into the session before the
	// first user input.
	Preload []string `yaml:"preload,omitempty"`
}

// DefaultConfig returns the configuration used when no soc.yaml exists.
func DefaultConfig() *Config {
	return &Config{Prompt: "soc> ", Color: "auto"}
}

// LoadConfig reads and validates a soc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return nil, fmt.Errorf("config %s: invalid color mode %q", path, cfg.Color)
	}
	if cfg.Precision < 0 {
		return nil, fmt.Errorf("config %s: precision must be non-negative", path)
	}
	return cfg, nil
}
