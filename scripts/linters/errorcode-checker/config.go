package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the checker configuration
type Config struct {
	ExcludePaths      []string `yaml:"exclude_paths"`
	ForbiddenPatterns []string `yaml:"forbidden_patterns"`
	// AllowedPaths may use forbidden patterns: codec packages wrap library
	// errors with go-faster/errors before the caller attaches a code.
	AllowedPaths    []string `yaml:"allowed_paths"`
	CheckForbidden  bool     `yaml:"check_forbidden"`
	ExitOnUnused    bool     `yaml:"exit_on_unused"`
	ExitOnForbidden bool     `yaml:"exit_on_forbidden"`
	Verbose         bool     `yaml:"verbose"`
}

func defaultConfig() *Config {
	return &Config{
		ExcludePaths:      []string{"_examples/", "scripts/", "testdata/", "vendor/", ".git/"},
		ForbiddenPatterns: []string{`fmt\.Errorf`, `errors\.Wrap\(`, `errors\.Wrapf\(`},
		AllowedPaths:      []string{"pkg/errors/", "formats/avro/", "formats/parquet/", "formats/xlsx/"},
		CheckForbidden:    true,
		ExitOnUnused:      true,
		ExitOnForbidden:   true,
	}
}

// loadConfig loads configuration from file on top of the defaults
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}
