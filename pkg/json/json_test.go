package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalToString(t *testing.T) {
	out, err := MarshalToString(map[string]interface{}{"name": "alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alice"}`, out)
	assert.NotContains(t, out, "\n")
}

func TestRoundTrip(t *testing.T) {
	data, err := Marshal([]string{"a", "b"})
	require.NoError(t, err)

	var out []string
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestMarshalToString_Reuse(t *testing.T) {
	for i := 0; i < 100; i++ {
		out, err := MarshalToString([]int{i})
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}
}
