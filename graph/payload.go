package graph

import (
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "skos",
		Category:    "concept",
		Version:     "v1",
		Description: "SKOS concept or concept scheme with triples for graph ingestion",
		Factory:     func() any { return &ConceptPayload{} },
	})
	if err != nil {
		panic("failed to register ConceptPayload: " + err.Error())
	}
}

// ConceptType is the message type for concept payloads.
var ConceptType = message.Type{Domain: "skos", Category: "concept", Version: "v1"}

// ConceptPayload carries one graph entity and its triples.
type ConceptPayload struct {
	ID         string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p *ConceptPayload) EntityID() string          { return p.ID }
func (p *ConceptPayload) Triples() []message.Triple { return p.TripleData }
func (p *ConceptPayload) Schema() message.Type      { return ConceptType }

func (p *ConceptPayload) Validate() error {
	if p.ID == "" {
		return errors.New("entity ID is required")
	}
	if len(p.TripleData) == 0 {
		return errors.New("at least one triple is required")
	}
	return nil
}
