// Copyright 2026 Convertly MCP Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the adapter configuration. Precedence, lowest to
// highest: built-in defaults, the YAML config file, environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvAPIKey      = "CONVERTLY_API_KEY"
	EnvAPIURL      = "CONVERTLY_API_URL"
	EnvTimeout     = "CONVERTLY_TIMEOUT"
	EnvMaxRetries  = "CONVERTLY_MAX_RETRIES"
	EnvLogLevel    = "CONVERTLY_LOG_LEVEL"
	EnvLogFormat   = "CONVERTLY_LOG_FORMAT"
	EnvMetricsAddr = "CONVERTLY_METRICS_ADDR"
	EnvConfigPath  = "CONVERTLY_CONFIG"
)

// Config is the complete adapter configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig configures the Convertly API client.
type APIConfig struct {
	// Key is the Convertly credential. Required; never logged.
	// Environment: CONVERTLY_API_KEY
	Key string `yaml:"key,omitempty"`

	// URL overrides the API base address.
	// Environment: CONVERTLY_API_URL
	URL string `yaml:"url,omitempty"`

	// Timeout is the per-request timeout. Default: 30s.
	// Environment: CONVERTLY_TIMEOUT
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MaxRetries bounds retries beyond the initial attempt. Default: 3.
	// Environment: CONVERTLY_MAX_RETRIES
	MaxRetries int `yaml:"max_retries,omitempty"`
}

// LogConfig configures logging. Logs go to stderr; stdout carries the MCP
// protocol.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info.
	// Environment: CONVERTLY_LOG_LEVEL
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json". Default: text.
	// Environment: CONVERTLY_LOG_FORMAT
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	// Environment: CONVERTLY_METRICS_ADDR
	Addr string `yaml:"addr,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the config file, and the
// environment. path overrides the default config file location; a missing
// file at the default location is fine, a missing explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Metrics.Addr = v
	}
}

// Validate checks field values. The API key is deliberately not required
// here so commands like --version work unconfigured; the client constructor
// enforces it.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (must be text or json)", ErrInvalidConfig, c.Log.Format)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidConfig)
	}
	return nil
}
