package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, EngineMem, cfg.Engine)
	assert.False(t, cfg.EnforcePrivacy)
	assert.True(t, cfg.EnableColumnar)
	assert.Equal(t, 3, cfg.Sampling.Rows)
	assert.Equal(t, 25, cfg.Sampling.MaxCellWidth)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "records engine", mutate: func(c *Config) { c.Engine = EngineRecords }},
		{name: "arrow engine with columnar", mutate: func(c *Config) { c.Engine = EngineArrow }},
		{
			name:    "empty engine",
			mutate:  func(c *Config) { c.Engine = "" },
			wantErr: "engine is required",
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine = "spark" },
			wantErr: "unknown engine",
		},
		{
			name: "arrow without columnar",
			mutate: func(c *Config) {
				c.Engine = EngineArrow
				c.EnableColumnar = false
			},
			wantErr: "requires enable_columnar",
		},
		{
			name:    "negative sampling rows",
			mutate:  func(c *Config) { c.Sampling.Rows = -1 },
			wantErr: "cannot be negative",
		},
		{
			name:    "cell width too small",
			mutate:  func(c *Config) { c.Sampling.MaxCellWidth = 3 },
			wantErr: "at least 4",
		},
		{
			name:    "missing log level",
			mutate:  func(c *Config) { c.Logging.Level = "" },
			wantErr: "logging.level is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHeadRows(t *testing.T) {
	cfg := New()
	assert.Equal(t, 3, cfg.HeadRows())

	cfg.EnforcePrivacy = true
	assert.Equal(t, 0, cfg.HeadRows())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvus.yaml")
	content := `
engine: records
enforce_privacy: true
sampling:
  rows: 5
  max_cell_width: 40
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineRecords, cfg.Engine)
	assert.True(t, cfg.EnforcePrivacy)
	assert.Equal(t, 5, cfg.Sampling.Rows)
	assert.Equal(t, 40, cfg.Sampling.MaxCellWidth)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset keys keep their defaults.
	assert.True(t, cfg.EnableColumnar)
	assert.Equal(t, "json", cfg.Logging.Encoding)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: spark\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CORVUS_ENGINE", "records")

	path := filepath.Join(t.TempDir(), "corvus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampling:\n  rows: 7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineRecords, cfg.Engine)
	assert.Equal(t, 7, cfg.Sampling.Rows)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvus.yaml")

	cfg := New()
	cfg.Engine = EngineArrow
	cfg.Sampling.Rows = 9
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EngineArrow, loaded.Engine)
	assert.Equal(t, 9, loaded.Sampling.Rows)
}
