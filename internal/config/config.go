package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration for netlint
type Config struct {
	// Rules maps rule names to severity: "off", "info", "warning", "error"
	Rules map[string]string `json:"rules,omitempty"`

	// IgnoreSignals is a list of glob patterns; matching signal names are
	// never reported
	IgnoreSignals []string `json:"ignoreSignals,omitempty"`

	// PolicyDir replaces the built-in severity policy with the .rego files
	// found in this directory
	PolicyDir string `json:"policyDir,omitempty"`

	// Verbose enables mark-transition tracing during the pass
	Verbose bool `json:"verbose,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Rules: map[string]string{
			"unused":   "warning",
			"undriven": "warning",
		},
		IgnoreSignals: []string{},
	}
}

// Load finds and loads the configuration file
// Search order:
//  1. ./netlint.json (current working directory)
//  2. ./.netlint.json (current working directory)
//  3. ~/.config/netlint/config.json
//
// Returns DefaultConfig if no config file is found
func Load() (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "netlint.json"),
		filepath.Join(cwd, ".netlint.json"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "netlint", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Rules == nil {
		c.Rules = make(map[string]string)
	}
	if c.IgnoreSignals == nil {
		c.IgnoreSignals = []string{}
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetRuleSeverity returns the severity for a rule, or the default if not configured
func (c *Config) GetRuleSeverity(rule string, defaultSeverity string) string {
	if severity, ok := c.Rules[rule]; ok {
		return severity
	}
	return defaultSeverity
}

// IsRuleEnabled returns true if the rule is not set to "off"
func (c *Config) IsRuleEnabled(rule string) bool {
	if severity, ok := c.Rules[rule]; ok {
		return severity != "off"
	}
	return true // enabled by default
}
