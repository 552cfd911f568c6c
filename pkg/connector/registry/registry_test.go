package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

type nopConnector struct{ name string }

func (c *nopConnector) Name() string                                  { return c.name }
func (c *nopConnector) Execute(context.Context) (frame.Table, error)  { return nil, nil }
func (c *nopConnector) Head(context.Context) (frame.Table, error)     { return nil, nil }
func (c *nopConnector) RowsCount(context.Context) (int64, error)      { return 0, nil }
func (c *nopConnector) ColumnsCount(context.Context) (int, error)     { return 0, nil }
func (c *nopConnector) ColumnHash() string                            { return "" }
func (c *nopConnector) SetLogger(*zap.Logger)                         {}
func (c *nopConnector) Equals(connector.Connector) bool               { return false }
func (c *nopConnector) Close(context.Context) error                   { return nil }

func TestRegisterAndOpen(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", func(_ context.Context, descriptor string, _ *config.Config) (connector.Connector, error) {
		return &nopConnector{name: descriptor}, nil
	}))

	conn, err := r.Open(context.Background(), "stub:payments", config.New())
	require.NoError(t, err)
	assert.Equal(t, "payments", conn.Name())
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewRegistry()
	factory := func(context.Context, string, *config.Config) (connector.Connector, error) {
		return &nopConnector{}, nil
	}

	require.NoError(t, r.Register("stub", factory))
	err := r.Register("stub", factory)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestOpen_UnknownScheme(t *testing.T) {
	r := NewRegistry()

	_, err := r.Open(context.Background(), "mystery:thing", config.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestSplitScheme(t *testing.T) {
	scheme, rest := splitScheme("file:payments.csv")
	assert.Equal(t, "file", scheme)
	assert.Equal(t, "payments.csv", rest)

	// URL-style descriptors keep the full source as the rest.
	scheme, rest = splitScheme("postgres://host/db#payments")
	assert.Equal(t, "postgres", scheme)
	assert.Equal(t, "postgres://host/db#payments", rest)

	scheme, rest = splitScheme("payments.csv")
	assert.Equal(t, "", scheme)
	assert.Equal(t, "payments.csv", rest)
}

func TestSchemes(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", func(context.Context, string, *config.Config) (connector.Connector, error) {
		return &nopConnector{}, nil
	}))
	assert.Equal(t, []string{"a"}, r.Schemes())
}
