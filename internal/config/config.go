// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// environment variables and CLI flags.
type Config struct {
	// Behavior
	APIKey      string `json:"api_key,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,uri"`
	Verbose     bool   `json:"verbose,omitempty"`
	JSONLogs    bool   `json:"json_logs,omitempty"`

	// Classifier tuning
	Workers           int `json:"workers,omitempty" validate:"omitempty,min=1,max=32"`
	ClassifierRetries int `json:"classifier_retries,omitempty" validate:"omitempty,min=1,max=5"`
	ClassifierTimeout int `json:"classifier_timeout_seconds,omitempty" validate:"omitempty,min=1,max=300"`

	// Session
	SessionTTLMinutes int `json:"session_ttl_minutes,omitempty" validate:"omitempty,min=1"`
}

// Defaults applied when a field is unset.
const (
	DefaultWorkers           = 4
	DefaultClassifierRetries = 2
	DefaultClassifierTimeout = 30
	DefaultSessionTTLMinutes = 120
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv builds a config from environment variables only.
func FromEnv() *Config {
	return &Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

// Validate checks field constraints via struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.ClassifierRetries == 0 {
		c.ClassifierRetries = DefaultClassifierRetries
	}
	if c.ClassifierTimeout == 0 {
		c.ClassifierTimeout = DefaultClassifierTimeout
	}
	if c.SessionTTLMinutes == 0 {
		c.SessionTTLMinutes = DefaultSessionTTLMinutes
	}
}
