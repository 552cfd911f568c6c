// Package config provides the unified configuration system for Corvus.
// It defines a single Config structure consumed by the loading layer, the
// sample head builder, and the CLI, ensuring consistent behavior across
// the entire system.
//
// The configuration is organized into logical sections:
//   - Engine: The table backend the process is configured for
//   - Privacy: Sample head privacy controls
//   - Sampling: Row budgets and truncation widths for previews
//   - Logging: Structured logging settings
//
// Example usage:
//
//	cfg := config.New()
//	cfg.EnforcePrivacy = true
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
)

// Engine names accepted by Config.Engine. The mem and records backends are
// interchangeable eager engines; arrow is the columnar engine.
const (
	EngineMem     = "mem"
	EngineRecords = "records"
	EngineArrow   = "arrow"
)

// Config is the single configuration structure for the dataframe layer.
type Config struct {
	// Engine selects the table backend the process is configured for
	// (mem, records or arrow). Engine validation at load time is a pure
	// function of this value.
	Engine string `yaml:"engine" json:"engine" mapstructure:"engine"`

	// EnforcePrivacy suppresses row-level preview data entirely. When set,
	// sample heads carry zero rows and no truncation is applied.
	EnforcePrivacy bool `yaml:"enforce_privacy" json:"enforce_privacy" mapstructure:"enforce_privacy"`

	// EnableColumnar gates the arrow columnar backend. Loading or truncating
	// arrow tables while disabled fails with a dependency error.
	EnableColumnar bool `yaml:"enable_columnar" json:"enable_columnar" mapstructure:"enable_columnar"`

	// Sampling controls sample head generation
	Sampling SamplingConfig `yaml:"sampling" json:"sampling" mapstructure:"sampling"`

	// Logging controls structured log output
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// SamplingConfig contains sample head settings.
type SamplingConfig struct {
	// Rows is the head row budget when privacy is not enforced
	Rows int `yaml:"rows" json:"rows" mapstructure:"rows"`
	// MaxCellWidth is the width above which textual columns are elided
	MaxCellWidth int `yaml:"max_cell_width" json:"max_cell_width" mapstructure:"max_cell_width"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level sets logging verbosity (debug, info, warn, error)
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Encoding selects the log encoder (json or console)
	Encoding string `yaml:"encoding" json:"encoding" mapstructure:"encoding"`
	// Development enables colored console-friendly output
	Development bool `yaml:"development" json:"development" mapstructure:"development"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		Engine:         EngineMem,
		EnforcePrivacy: false,
		EnableColumnar: true,
		Sampling: SamplingConfig{
			Rows:         3,
			MaxCellWidth: 25,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Encoding:    "json",
			Development: false,
		},
	}
}

// Validate validates the configuration for correctness.
// It checks required fields and ensures values are within acceptable ranges.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineMem, EngineRecords, EngineArrow:
	case "":
		return fmt.Errorf("engine is required")
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.Engine == EngineArrow && !c.EnableColumnar {
		return fmt.Errorf("engine %q requires enable_columnar", c.Engine)
	}
	if c.Sampling.Rows < 0 {
		return fmt.Errorf("sampling.rows cannot be negative")
	}
	if c.Sampling.MaxCellWidth < 4 {
		// the elided form is max_cell_width-3 characters plus "..."
		return fmt.Errorf("sampling.max_cell_width must be at least 4")
	}
	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level is required")
	}
	return nil
}

// HeadRows returns the sample head row budget under the current privacy
// setting.
func (c *Config) HeadRows() int {
	if c.EnforcePrivacy {
		return 0
	}
	return c.Sampling.Rows
}
