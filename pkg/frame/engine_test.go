package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
)

type fakeTable struct{ Table }

func TestDetect_UnknownBackend(t *testing.T) {
	_, err := Detect(&fakeTable{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeEngine))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		detected Engine
		engine   string
		columnar bool
		wantType errors.ErrorType
	}{
		{name: "mem matches mem", detected: EngineMem, engine: config.EngineMem, columnar: true},
		{name: "records matches records", detected: EngineRecords, engine: config.EngineRecords, columnar: true},
		{name: "mem rejected under records", detected: EngineMem, engine: config.EngineRecords, columnar: true, wantType: errors.ErrorTypeEngineMismatch},
		{name: "records rejected under mem", detected: EngineRecords, engine: config.EngineMem, columnar: true, wantType: errors.ErrorTypeEngineMismatch},
		{name: "arrow bypasses engine check", detected: EngineArrow, engine: config.EngineMem, columnar: true},
		{name: "arrow rejected when columnar disabled", detected: EngineArrow, engine: config.EngineMem, columnar: false, wantType: errors.ErrorTypeDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Engine = tt.engine
			cfg.EnableColumnar = tt.columnar

			err := Validate(tt.detected, cfg)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType))
		})
	}
}

func TestEngine_Eager(t *testing.T) {
	assert.True(t, EngineMem.Eager())
	assert.True(t, EngineRecords.Eager())
	assert.False(t, EngineArrow.Eager())
}
