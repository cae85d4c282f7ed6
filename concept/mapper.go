package concept

import "github.com/c360studio/semvocab/code"

// Mapper maps codes to concept URIs inside one namespace.
type Mapper struct {
	namespace string
}

// NewMapper creates a mapper for namespace, e.g. "https://bartoc.org/owcm/".
func NewMapper(namespace string) Mapper {
	return Mapper{namespace: namespace}
}

// Namespace returns the configured base namespace.
func (m Mapper) Namespace() string {
	return m.namespace
}

// URI returns namespace + normalized code.
func (m Mapper) URI(c string) string {
	return m.namespace + code.Normalize(c)
}

// References maps codes to references. A nil input stays nil so that
// "no relation" and "empty relation" remain distinguishable.
func (m Mapper) References(codes []string) []Reference {
	if codes == nil {
		return nil
	}
	refs := make([]Reference, len(codes))
	for i, c := range codes {
		refs[i] = Reference{URI: m.URI(c)}
	}
	return refs
}
