// Package config provides configuration management for the scraper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"storescrape/pkg/utils"
)

// Source kinds. Each kind is served by one adapter.
const (
	KindAPIJSON  = "api_json"
	KindAJAXJSON = "ajax_json"
	KindHTML     = "html"
)

// Configuration validation errors.
var (
	ErrNoSources            = errors.New("at least one source is required")
	ErrSourceMissingName    = errors.New("source name is required")
	ErrDuplicateSourceName  = errors.New("source names must be unique")
	ErrSourceMissingURL     = errors.New("source url is required")
	ErrSourceMissingOutput  = errors.New("source output file is required")
	ErrUnknownSourceKind    = errors.New("source kind must be one of: api_json, ajax_json, html")
	ErrNoEnabledSources     = errors.New("at least one source must be enabled")
	ErrInvalidTimeout       = errors.New("http.timeout_sec must be at least 1")
	ErrMissingGeocoderURL   = errors.New("geocoder.base_url is required")
	ErrMissingGeocoderAgent = errors.New("geocoder.user_agent is required")
	ErrMissingOutputDir     = errors.New("output.base_dir is required")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete scraper configuration.
type Config struct {
	Sources  []SourceConfig `yaml:"sources"`
	HTTP     HTTPConfig     `yaml:"http"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig represents one store listing source.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	URL     string `yaml:"url"`
	Output  string `yaml:"output"`
	Enabled bool   `yaml:"enabled"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// GeocoderConfig configures place name resolution.
type GeocoderConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
	Email     string `yaml:"email"`
	City      string `yaml:"city"`
}

// OutputConfig defines where documents are written.
type OutputConfig struct {
	BaseDir string `yaml:"base_dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used for anything the file leaves empty.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent:  utils.DefaultUserAgent,
			TimeoutSec: 30,
		},
		Geocoder: GeocoderConfig{
			BaseURL:   "https://nominatim.openstreetmap.org/search",
			UserAgent: "my_request",
			City:      "Минск",
		},
		Output: OutputConfig{
			BaseDir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file, fills in defaults and validates it.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := Load(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads a YAML file and fills in defaults without validating, so
// callers can adjust the result before calling Validate.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Decode(data)
}

// Parse decodes YAML configuration, fills in defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Decode decodes YAML configuration and fills in defaults.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]bool, len(c.Sources))
	enabledCount := 0

	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingName, i)
		}

		if seen[src.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateSourceName, src.Name)
		}

		seen[src.Name] = true

		if src.URL == "" {
			return fmt.Errorf("%w: source %q", ErrSourceMissingURL, src.Name)
		}

		if src.Output == "" {
			return fmt.Errorf("%w: source %q", ErrSourceMissingOutput, src.Name)
		}

		switch src.Kind {
		case KindAPIJSON, KindAJAXJSON, KindHTML:
		default:
			return fmt.Errorf("%w: source %q has %q", ErrUnknownSourceKind, src.Name, src.Kind)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.HTTP.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Geocoder.BaseURL == "" {
		return ErrMissingGeocoderURL
	}

	if c.Geocoder.UserAgent == "" {
		return ErrMissingGeocoderAgent
	}

	if c.Output.BaseDir == "" {
		return ErrMissingOutputDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetSource returns the named source.
func (c *Config) GetSource(name string) (SourceConfig, bool) {
	for _, src := range c.Sources {
		if src.Name == name {
			return src, true
		}
	}

	return SourceConfig{}, false
}

// GetOutputPath returns {base_dir}/{output} for a source.
func (c *Config) GetOutputPath(src SourceConfig) string {
	return filepath.Join(c.Output.BaseDir, src.Output)
}

// GetTimeout returns the HTTP client timeout.
func (h *HTTPConfig) GetTimeout() time.Duration {
	return time.Duration(h.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, Enabled: %d, Output: %s}",
		len(c.Sources),
		len(c.GetEnabledSources()),
		c.Output.BaseDir,
	)
}
