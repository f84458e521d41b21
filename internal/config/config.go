// Package config loads ScubaLog settings from defaults, an optional YAML
// file and SCUBALOG_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for all environment overrides (e.g. SCUBALOG_SHEET_ID)
	EnvPrefix = "scubalog"

	// DefaultConfigFile is read from the working directory when no --config is given
	DefaultConfigFile = "scubalog.yaml"

	DefaultSheetHost = "https://docs.google.com/spreadsheets/d"
	DefaultSheetID   = "1Xn4HTnQ_i8YgqCD_jdNcO8odXTznGstFVNZzvnoVAX0"
	DefaultSheetTab  = "Form Responses 1"

	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFile     = "scubalog.log"
)

// MappingMode selects how CSV columns are mapped onto dive fields
type MappingMode string

const (
	MappingPositional MappingMode = "positional" // fixed column order A..K
	MappingHeader     MappingMode = "header"     // resolve columns by header name
)

// Config is the complete application configuration
type Config struct {
	Sheet   SheetConfig   `yaml:"sheet" envconfig:"SHEET"`
	HTTP    HTTPConfig    `yaml:"http" envconfig:"HTTP"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOG"`
}

// SheetConfig identifies the spreadsheet tab the dives are read from
type SheetConfig struct {
	Host    string      `yaml:"host" envconfig:"HOST"`
	ID      string      `yaml:"id" envconfig:"ID"`
	Tab     string      `yaml:"tab" envconfig:"TAB"`
	Mapping MappingMode `yaml:"mapping" envconfig:"MAPPING"`
}

// HTTPConfig configures the client used to download the sheet.
// A zero Timeout means no timeout.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
	File  string `yaml:"file" envconfig:"FILE"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Sheet: SheetConfig{
			Host:    DefaultSheetHost,
			ID:      DefaultSheetID,
			Tab:     DefaultSheetTab,
			Mapping: MappingPositional,
		},
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load builds the configuration. If path is empty the default config file is
// used when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	filePath := path
	if filePath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			filePath = DefaultConfigFile
		}
	}

	if filePath != "" {
		if err := cfg.loadFile(filePath); err != nil {
			return nil, err
		}
	}

	// Env vars only touch fields that are set, so file values survive
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("loading config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile merges a YAML file over the current values
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the configuration for values the fetcher cannot use
func (c *Config) Validate() error {
	var errs []error

	if c.Sheet.Host == "" {
		errs = append(errs, errors.New("sheet host cannot be empty"))
	}
	if c.Sheet.ID == "" {
		errs = append(errs, errors.New("sheet id cannot be empty"))
	}
	if c.Sheet.Tab == "" {
		errs = append(errs, errors.New("sheet tab cannot be empty"))
	}

	switch c.Sheet.Mapping {
	case MappingPositional, MappingHeader:
	default:
		errs = append(errs, fmt.Errorf("unknown mapping mode %q (want %q or %q)",
			c.Sheet.Mapping, MappingPositional, MappingHeader))
	}

	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout cannot be negative: %s", c.HTTP.Timeout))
	}

	return errors.Join(errs...)
}

// ShortSheetID returns the first 8 characters of the sheet ID for display
func (s SheetConfig) ShortSheetID() string {
	if len(s.ID) <= 8 {
		return s.ID
	}
	return s.ID[:8]
}
