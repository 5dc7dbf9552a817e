// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/placement-matcher/internal/ranking"
)

// Defaults applied by MergeWithDefaults when a field is unset
const (
	DefaultPort             = 8080
	DefaultMaxInputBytes    = 512 << 10
	DefaultBatchConcurrency = 4
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables, or CLI flags.
type Config struct {
	LexiconPath      string `json:"lexicon_path,omitempty"`      // Path to a JSON lexicon replacing the built-in table
	DefaultRole      string `json:"default_role,omitempty"`      // Weight profile used when a request names no role
	Port             int    `json:"port,omitempty"`              // HTTP port for serve
	DatabaseURL      string `json:"database_url,omitempty"`      // PostgreSQL connection URL
	MaxInputBytes    int    `json:"max_input_bytes,omitempty"`   // Request and file size cap
	BatchConcurrency int    `json:"batch_concurrency,omitempty"` // Parallel analyses in batch mode
	Verbose          bool   `json:"verbose,omitempty"`           // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("config error: 'max_input_bytes' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}

	if c.DefaultRole != "" {
		if _, ok := ranking.Profile(c.DefaultRole); !ok {
			return fmt.Errorf("config error: unknown 'default_role' %q (known: %v)", c.DefaultRole, ranking.ProfileNames())
		}
	}

	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults,
// then from the environment, then from the package constants.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.LexiconPath == "" {
		result.LexiconPath = defaults.LexiconPath
	}
	if result.DefaultRole == "" {
		result.DefaultRole = defaults.DefaultRole
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
			result.Port = port
		}
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	if result.MaxInputBytes == 0 {
		result.MaxInputBytes = defaults.MaxInputBytes
	}
	if result.MaxInputBytes == 0 {
		result.MaxInputBytes = DefaultMaxInputBytes
	}

	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = DefaultBatchConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
