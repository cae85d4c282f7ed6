package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360studio/semvocab/concept"
)

// Document is a complete vocabulary: envelope, scheme and concepts.
type Document struct {
	Envelope *Envelope
	Scheme   concept.Scheme
	Concepts []concept.Concept
}

// NewDocument assembles a document. The envelope is copied so one template
// can serve many runs.
func NewDocument(envelope *Envelope, scheme concept.Scheme, concepts []concept.Concept) *Document {
	if envelope == nil {
		envelope = NewEnvelope()
	}
	return &Document{
		Envelope: envelope.Clone(),
		Scheme:   scheme,
		Concepts: concepts,
	}
}

// Graph returns the scheme followed by every concept, in input order.
func (d *Document) Graph() []any {
	graph := make([]any, 0, len(d.Concepts)+1)
	graph = append(graph, d.Scheme)
	for _, c := range d.Concepts {
		graph = append(graph, c)
	}
	return graph
}

// JSONLD serializes the document. The envelope keeps its key order and the
// graph is stored under GraphKey (in place if the template already has it).
func (d *Document) JSONLD(indent int) ([]byte, error) {
	env := d.Envelope.Clone()
	if err := env.Set(GraphKey, d.Graph()); err != nil {
		return nil, err
	}

	compact, err := env.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal vocabulary: %w", err)
	}
	if indent <= 0 {
		return append(compact, '\n'), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, fmt.Errorf("indent vocabulary: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
