package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
	"github.com/corvus-data/corvus/pkg/load"
	"github.com/corvus-data/corvus/pkg/smartframe"
)

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payments.csv")
	content := "name,amount\nalice,100\nbob,250\ncarol,75\ndave,300\nerin,50\nfrank,125\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_RejectsUnsupportedPath(t *testing.T) {
	_, err := New("notes.txt", config.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFileFormat))
}

func TestExecute(t *testing.T) {
	conn, err := New(writeCSV(t), config.New())
	require.NoError(t, err)

	tbl, err := conn.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.NumRows())
	assert.Equal(t, []string{"name", "amount"}, tbl.Columns())
}

func TestHead(t *testing.T) {
	conn, err := New(writeCSV(t), config.New())
	require.NoError(t, err)

	head, err := conn.Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, head.NumRows())
}

func TestCounts(t *testing.T) {
	conn, err := New(writeCSV(t), config.New())
	require.NoError(t, err)

	rows, err := conn.RowsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), rows)

	cols, err := conn.ColumnsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cols)
}

func TestColumnHash(t *testing.T) {
	conn, err := New(writeCSV(t), config.New())
	require.NoError(t, err)

	h := conn.ColumnHash()
	assert.Equal(t, frame.ColumnHashOf([]string{"name", "amount"}), h)
	assert.Equal(t, h, conn.ColumnHash())
}

func TestEquals(t *testing.T) {
	cfg := config.New()
	path := writeCSV(t)

	a, err := New(path, cfg)
	require.NoError(t, err)
	b, err := New(path, cfg)
	require.NoError(t, err)
	c, err := New(writeCSV(t), cfg)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestWithSmartframe(t *testing.T) {
	conn, err := New(writeCSV(t), config.New())
	require.NoError(t, err)

	f, err := smartframe.New(load.FromConnector(conn))
	require.NoError(t, err)

	assert.Nil(t, f.Dataframe())
	require.NoError(t, f.LoadConnector(context.Background(), false))

	df := f.Dataframe()
	require.NotNil(t, df)
	assert.Equal(t, 6, df.NumRows())

	head, err := f.HeadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, head.NumRows())
}
