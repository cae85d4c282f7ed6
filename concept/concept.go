// Package concept turns classification rows into SKOS concept records.
//
// The Builder reads every row once to collect the code set, resolves the
// hierarchy of each code against that set and emits one Concept per row in
// input order. Labels and notes come from the descriptor and change columns.
package concept

import (
	"github.com/c360studio/semvocab/code"
	"github.com/c360studio/semvocab/vocabulary/skos"
)

// DefaultLanguage tags labels when no language is configured.
const DefaultLanguage = "en"

// Label is a language-tagged literal.
type Label struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// Reference points at another concept by URI.
type Reference struct {
	URI string `json:"uri"`
}

// Concept is one node of the output graph. Field order is the serialized key
// order. Nil pointers and nil slices serialize as null.
type Concept struct {
	URI         string      `json:"uri"`
	Type        string      `json:"type"`
	PrefLabel   *Label      `json:"prefLabel"`
	AltLabel    *Label      `json:"altLabel"`
	Definition  *Label      `json:"definition"`
	HistoryNote *string     `json:"historyNote"`
	ChangeNote  *string     `json:"changeNote"`
	InScheme    string      `json:"inScheme"`
	Broader     []Reference `json:"broader"`
	Narrower    []Reference `json:"narrower"`

	// Code and Tier are kept for reporting and non-JSON exports.
	Code string    `json:"-"`
	Tier code.Tier `json:"-"`
}

// Scheme is the concept-scheme node placed first in the graph.
type Scheme struct {
	URI   string `json:"uri"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// NewScheme creates a concept-scheme record.
func NewScheme(uri, label string) Scheme {
	return Scheme{
		URI:   uri,
		Type:  skos.TypeConceptScheme,
		Label: label,
	}
}
