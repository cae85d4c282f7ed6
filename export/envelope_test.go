package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope_KeepsKeyOrder(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"z": 1, "@context": {"skos": "x"}, "a": [true]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "@context", "a"}, env.Keys())

	out, err := env.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"@context":{"skos": "x"},"a":[true]}`, string(out))
}

func TestParseEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"array", `[1, 2]`},
		{"truncated", `{"a": 1`},
		{"trailing", `{"a": 1} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestEnvelope_SetExistingKeepsPosition(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"a": 1, "graph": [], "b": 2}`))
	require.NoError(t, err)

	require.NoError(t, env.Set(GraphKey, []string{"x"}))
	require.NoError(t, env.Set("c", "<&>"))

	assert.Equal(t, []string{"a", GraphKey, "b", "c"}, env.Keys())

	raw, ok := env.Get("c")
	require.True(t, ok)
	assert.Equal(t, `"<&>"`, string(raw))
}

func TestEnvelope_CloneIsIndependent(t *testing.T) {
	env := NewEnvelope()
	require.NoError(t, env.Set("a", 1))

	clone := env.Clone()
	require.NoError(t, clone.Set("b", 2))

	assert.Equal(t, []string{"a"}, env.Keys())
	assert.Equal(t, []string{"a", "b"}, clone.Keys())

	var decoded map[string]int
	data, err := json.Marshal(clone)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, decoded)
}
