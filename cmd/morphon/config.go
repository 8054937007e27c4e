package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/morphon/rule"
	"github.com/npillmayer/morphon/shape/shapelang"
	"gopkg.in/yaml.v3"
)

// Config is the content of a configuration file.
type Config struct {
	Trace        string            `yaml:"trace"`         // trace level [Debug|Info|Error]
	Mode         string            `yaml:"mode"`          // overrides the application mode of all rules
	Disabled     []string          `yaml:"disabled"`      // names of rules to skip
	Segments     map[string]string `yaml:"segments"`      // symbol => feature list
	ShowFailures bool              `yaml:"show_failures"` // list rules not applied in derivation trees
}

// DefaultConfig returns the configuration used without a configuration file.
func DefaultConfig() *Config {
	return &Config{Trace: "Error"}
}

// LoadConfig reads a YAML configuration file. An empty path or a missing file
// yield the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			tracer().Infof("config file %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Mode != "" {
		if _, err := rule.ParseMode(cfg.Mode); err != nil {
			return err
		}
	}
	for sym, features := range cfg.Segments {
		if _, err := shapelang.ParseBundle(features); err != nil {
			return fmt.Errorf("segment %s: %w", sym, err)
		}
	}
	return nil
}

// selector returns a rule selector rejecting the disabled rules.
func (cfg *Config) selector() rule.Selector {
	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		disabled[name] = true
	}
	return func(r *rule.Rule) bool {
		return !disabled[r.Name]
	}
}
