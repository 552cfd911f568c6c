// Package config provides configuration loading
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load loads a configuration from a YAML file. Values can be overridden
// through CORVUS_-prefixed environment variables, e.g. CORVUS_ENGINE or
// CORVUS_SAMPLING_ROWS.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CORVUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := New()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers defaults so env-only overrides work without a key
// being present in the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("engine", cfg.Engine)
	v.SetDefault("enforce_privacy", cfg.EnforcePrivacy)
	v.SetDefault("enable_columnar", cfg.EnableColumnar)
	v.SetDefault("sampling.rows", cfg.Sampling.Rows)
	v.SetDefault("sampling.max_cell_width", cfg.Sampling.MaxCellWidth)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.encoding", cfg.Logging.Encoding)
	v.SetDefault("logging.development", cfg.Logging.Development)
}

// Save saves a configuration to a YAML file
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
