package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/c360studio/semvocab/export"
)

//go:embed default_template.json
var defaultTemplate []byte

// DefaultTemplate returns the built-in SKOS envelope.
func DefaultTemplate() *export.Envelope {
	env, err := export.ParseEnvelope(jsonc.ToJSON(defaultTemplate))
	if err != nil {
		panic(fmt.Sprintf("built-in template is invalid: %v", err))
	}
	return env
}

// LoadTemplate reads the JSON-LD envelope at path. Comments and trailing
// commas are allowed. An empty path returns the built-in template.
func LoadTemplate(path string) (*export.Envelope, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read template: %w", ErrConfigLoad, err)
	}

	env, err := export.ParseEnvelope(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("%w: template %s: %w", ErrConfigLoad, path, err)
	}
	return env, nil
}
