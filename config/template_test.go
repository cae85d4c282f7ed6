package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/export"
)

func TestDefaultTemplate(t *testing.T) {
	env := DefaultTemplate()
	assert.Equal(t, []string{"@context"}, env.Keys())

	raw, ok := env.Get("@context")
	require.True(t, ok)
	assert.Contains(t, string(raw), "http://www.w3.org/2004/02/skos/core#")
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	writeFile(t, path, `{
    // comments and trailing commas are accepted
    "title": "Waste codes",
    "@context": {"skos": "http://www.w3.org/2004/02/skos/core#",},
    "graph": [],
}`)

	env, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "@context", export.GraphKey}, env.Keys())
}

func TestLoadTemplate_EmptyPathIsBuiltIn(t *testing.T) {
	env, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate().Keys(), env.Keys())
}

func TestLoadTemplate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTemplate(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrConfigLoad)

	notObject := filepath.Join(dir, "array.json")
	writeFile(t, notObject, `[1, 2, 3]`)
	_, err = LoadTemplate(notObject)
	assert.ErrorIs(t, err, ErrConfigLoad)
}
