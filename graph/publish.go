// Package graph publishes converted vocabularies to the knowledge graph as
// one entity per concept.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semvocab/code"
	"github.com/c360studio/semvocab/concept"
	"github.com/c360studio/semvocab/vocabulary/skos"
)

// DefaultSubject is the graph ingestion subject.
const DefaultSubject = "graph.ingest.entity"

const tripleSource = "semvocab.convert"

// Publisher is the subset of *nats.Conn used for graph publication.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Entities maps a scheme and its concepts to graph entity IDs.
type Entities struct {
	system    string
	namespace string
}

// NewEntities creates an ID mapper. system names the vocabulary inside
// entity IDs (e.g. "owcm"); namespace is the concept URI namespace.
func NewEntities(system, namespace string) Entities {
	system = strings.ToLower(code.Normalize(system))
	if system == "" {
		system = "vocabulary"
	}
	return Entities{system: strings.ReplaceAll(system, ".", "-"), namespace: namespace}
}

// SchemeID returns the entity ID of the concept scheme.
// Format: semvocab.local.vocabulary.<system>.scheme.<system>
func (e Entities) SchemeID() string {
	return fmt.Sprintf("semvocab.local.vocabulary.%s.scheme.%s", e.system, e.system)
}

// ConceptID returns the entity ID of a code. Dots are not allowed inside an
// ID segment and become dashes.
// Format: semvocab.local.vocabulary.<system>.concept.<code>
func (e Entities) ConceptID(c string) string {
	return fmt.Sprintf("semvocab.local.vocabulary.%s.concept.%s", e.system, strings.ReplaceAll(c, ".", "-"))
}

// conceptIDForURI maps a concept URI back to its entity ID.
func (e Entities) conceptIDForURI(uri string) string {
	return e.ConceptID(strings.TrimPrefix(uri, e.namespace))
}

// Payloads builds the scheme entity followed by one entity per concept.
func (e Entities) Payloads(scheme concept.Scheme, concepts []concept.Concept, now time.Time) []*ConceptPayload {
	out := make([]*ConceptPayload, 0, len(concepts)+1)

	schemeID := e.SchemeID()
	schemeTriples := []message.Triple{triple(schemeID, skos.SchemeLabel, scheme.Label, now)}
	out = append(out, &ConceptPayload{ID: schemeID, TripleData: schemeTriples, UpdatedAt: now})

	for _, c := range concepts {
		id := e.ConceptID(c.Code)
		var triples []message.Triple
		if c.PrefLabel != nil {
			triples = append(triples, triple(id, skos.LabelPreferred, c.PrefLabel.Value, now))
		}
		if c.AltLabel != nil {
			triples = append(triples, triple(id, skos.LabelAlternate, c.AltLabel.Value, now))
		}
		if c.Definition != nil {
			triples = append(triples, triple(id, skos.NoteDefinition, c.Definition.Value, now))
		}
		if c.HistoryNote != nil {
			triples = append(triples, triple(id, skos.NoteHistory, *c.HistoryNote, now))
		}
		if c.ChangeNote != nil {
			triples = append(triples, triple(id, skos.NoteChange, *c.ChangeNote, now))
		}
		triples = append(triples, triple(id, skos.RelationInScheme, schemeID, now))
		for _, ref := range c.Broader {
			triples = append(triples, triple(id, skos.RelationBroader, e.conceptIDForURI(ref.URI), now))
		}
		for _, ref := range c.Narrower {
			triples = append(triples, triple(id, skos.RelationNarrower, e.conceptIDForURI(ref.URI), now))
		}
		out = append(out, &ConceptPayload{ID: id, TripleData: triples, UpdatedAt: now})
	}
	return out
}

func triple(subject, predicate string, object any, now time.Time) message.Triple {
	return message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     tripleSource,
		Timestamp:  now,
		Confidence: 1.0,
	}
}

// Publish sends every payload to subject and returns the number published.
func Publish(ctx context.Context, pub Publisher, subject string, payloads []*ConceptPayload) (int, error) {
	for i, p := range payloads {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := p.Validate(); err != nil {
			return i, fmt.Errorf("validate entity %s: %w", p.ID, err)
		}
		data, err := json.Marshal(p)
		if err != nil {
			return i, fmt.Errorf("marshal entity %s: %w", p.ID, err)
		}
		if err := pub.Publish(subject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", p.ID, err)
		}
	}
	return len(payloads), nil
}
