package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnHash_ContentIndependent(t *testing.T) {
	a, err := Build(EngineMem, []string{"name", "amount"}, [][]interface{}{
		{"alice", int64(1)},
	})
	require.NoError(t, err)

	b, err := Build(EngineMem, []string{"name", "amount"}, [][]interface{}{
		{"bob", int64(99)},
		{"carol", int64(3)},
	})
	require.NoError(t, err)

	// The hash identifies the schema, not the data.
	assert.Equal(t, ColumnHash(a), ColumnHash(b))
}

func TestColumnHash_NameSensitive(t *testing.T) {
	a, err := Build(EngineMem, []string{"name", "amount"}, [][]interface{}{{"x", int64(1)}})
	require.NoError(t, err)

	b, err := Build(EngineMem, []string{"name", "total"}, [][]interface{}{{"x", int64(1)}})
	require.NoError(t, err)

	assert.NotEqual(t, ColumnHash(a), ColumnHash(b))
}

func TestColumnHashOf_Stable(t *testing.T) {
	h := ColumnHashOf([]string{"a", "b"})
	assert.Len(t, h, 64)
	assert.Equal(t, h, ColumnHashOf([]string{"a", "b"}))
	// Concatenation means the hash depends on order.
	assert.NotEqual(t, h, ColumnHashOf([]string{"b", "a"}))
}
