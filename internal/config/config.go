// Package config loads CarbonWise settings from ~/.carbonwise/config.yaml
// (or the file named by CARBONWISE_CONFIG), layered over built-in defaults
// and then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables recognized by Load.
const (
	EnvHome      = "CARBONWISE_HOME"
	EnvConfig    = "CARBONWISE_CONFIG"
	EnvDataDir   = "CARBONWISE_DATA_DIR"
	EnvLogLevel  = "CARBONWISE_LOG_LEVEL"
	EnvLogFormat = "CARBONWISE_LOG_FORMAT"
	EnvCountry   = "CARBONWISE_COUNTRY"
	EnvGridYear  = "CARBONWISE_GRID_YEAR"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Defaults.
const (
	DefaultCountry   = "US"
	DefaultGridYear  = 2023
	DefaultTopN      = 3
	DefaultPrecision = 2
	MaxPrecision     = 6
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	configFileName = "config.yaml"
	configDirName  = ".carbonwise"
)

// Config is the complete CarbonWise configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig locates the reference tables.
type DataConfig struct {
	// Dir holds the reference JSON files. Empty uses the embedded sample.
	Dir string `yaml:"dir"`
}

// DefaultsConfig supplies values for omitted command flags.
type DefaultsConfig struct {
	Country          string `yaml:"country"`
	GridYear         int    `yaml:"grid_year"`
	TopN             int    `yaml:"top_n"`
	UseCorrectedGrid bool   `yaml:"use_corrected_grid"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Country:          DefaultCountry,
			GridYear:         DefaultGridYear,
			TopN:             DefaultTopN,
			UseCorrectedGrid: true,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns the effective configuration. A missing or unreadable
// config file leaves the defaults in place.
func New() *Config {
	cfg, err := Load(ConfigPath())
	if err != nil {
		cfg = Default()
		cfg.ApplyEnv()
	}
	return cfg
}

// Load merges the YAML file at path over the defaults and applies
// environment overrides. A path that does not exist is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
				return nil, mergeErr
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CARBONWISE_* environment variables.
// An unparseable CARBONWISE_GRID_YEAR is ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvCountry); v != "" {
		c.Defaults.Country = v
	}
	if v := os.Getenv(EnvGridYear); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.Defaults.GridYear = year
		}
	}
}

// Validate checks field values that would otherwise fail late.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.DefaultFormat) {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("invalid output.default_format %q: must be %s or %s",
			c.Output.DefaultFormat, FormatTable, FormatJSON)
	}
	if c.Defaults.GridYear < 0 {
		return fmt.Errorf("invalid defaults.grid_year %d", c.Defaults.GridYear)
	}
	if c.Defaults.TopN < 0 {
		return fmt.Errorf("invalid defaults.top_n %d", c.Defaults.TopN)
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("invalid output.precision %d: must be between 0 and %d", c.Output.Precision, MaxPrecision)
	}
	return nil
}

// ConfigPath returns CARBONWISE_CONFIG if set, otherwise config.yaml in
// the config directory. It is empty when no home directory is known.
func ConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configFileName)
}
