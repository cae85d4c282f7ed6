package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semvocab/concept"
	"github.com/c360studio/semvocab/vocabulary/skos"
)

// IRI is an RDF resource reference.
type IRI string

// Literal is an RDF literal with an optional language tag.
type Literal struct {
	Value string
	Lang  string
}

// Triple represents a semantic triple for export.
type Triple struct {
	Subject   string
	Predicate string
	Object    any
}

// Standard IRIs used outside the SKOS namespace.
const (
	skosNotation       = skos.Namespace + "notation"
	skosHasTopConcept  = skos.Namespace + "hasTopConcept"
	rdfsNamespace      = "http://www.w3.org/2000/01/rdf-schema#"
	rdfNamespace       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdNamespacePrefix = "http://www.w3.org/2001/XMLSchema#"
)

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  rdfNamespace,
		"rdfs": rdfsNamespace,
		"xsd":  xsdNamespacePrefix,
		"skos": skos.Namespace,
	}
}

// RDFExporter converts a document to triples.
type RDFExporter struct {
	profile ProfileConfig
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{profile: GetProfileConfig(profile)}
}

// Subject groups the triples of one graph node.
type Subject struct {
	IRI     string
	Type    string
	Triples []Triple
}

// Subjects returns the scheme and concepts as triple groups, in graph order.
func (e *RDFExporter) Subjects(doc *Document) []Subject {
	subjects := make([]Subject, 0, len(doc.Concepts)+1)
	subjects = append(subjects, e.schemeSubject(doc))
	for _, c := range doc.Concepts {
		subjects = append(subjects, e.conceptSubject(doc.Scheme, c))
	}
	return subjects
}

func (e *RDFExporter) schemeSubject(doc *Document) Subject {
	s := Subject{IRI: doc.Scheme.URI, Type: skos.ClassConceptScheme}
	if doc.Scheme.Label != "" {
		s.add(skos.GetPredicateIRI(skos.SchemeLabel), Literal{Value: doc.Scheme.Label})
	}
	if e.profile.IncludeTopConcepts {
		for _, c := range doc.Concepts {
			if isTopConcept(c) {
				s.add(skosHasTopConcept, IRI(c.URI))
			}
		}
	}
	return s
}

func (e *RDFExporter) conceptSubject(scheme concept.Scheme, c concept.Concept) Subject {
	s := Subject{IRI: c.URI, Type: skos.ClassConcept}

	if c.PrefLabel != nil {
		s.add(skos.GetPredicateIRI(skos.LabelPreferred), Literal{Value: c.PrefLabel.Value, Lang: c.PrefLabel.Lang})
	}
	if c.AltLabel != nil {
		s.add(skos.GetPredicateIRI(skos.LabelAlternate), Literal{Value: c.AltLabel.Value, Lang: c.AltLabel.Lang})
	}
	if c.Definition != nil {
		s.add(skos.GetPredicateIRI(skos.NoteDefinition), Literal{Value: c.Definition.Value, Lang: c.Definition.Lang})
	}
	if c.HistoryNote != nil {
		s.add(skos.GetPredicateIRI(skos.NoteHistory), Literal{Value: *c.HistoryNote})
	}
	if c.ChangeNote != nil {
		s.add(skos.GetPredicateIRI(skos.NoteChange), Literal{Value: *c.ChangeNote})
	}
	if c.InScheme != "" {
		s.add(skos.GetPredicateIRI(skos.RelationInScheme), IRI(c.InScheme))
	}
	for _, ref := range c.Broader {
		s.add(skos.GetPredicateIRI(skos.RelationBroader), IRI(ref.URI))
	}
	for _, ref := range c.Narrower {
		s.add(skos.GetPredicateIRI(skos.RelationNarrower), IRI(ref.URI))
	}

	if e.profile.IncludeNotation && c.Code != "" {
		s.add(skosNotation, Literal{Value: c.Code})
	}
	if e.profile.IncludeTopConcepts && isTopConcept(c) {
		s.add(skos.PropTopConceptOf, IRI(scheme.URI))
	}
	return s
}

func (s *Subject) add(predicate string, object any) {
	s.Triples = append(s.Triples, Triple{Subject: s.IRI, Predicate: predicate, Object: object})
}

// isTopConcept reports whether c has no broader concept.
func isTopConcept(c concept.Concept) bool {
	return c.Broader == nil
}

// Turtle serializes doc in Turtle format.
func (e *RDFExporter) Turtle(doc *Document) string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	for _, s := range e.Subjects(doc) {
		w.WriteSubject(s.IRI)
		w.WriteType(s.Type, len(s.Triples) == 0)
		for i, t := range s.Triples {
			w.WritePredicate(t.Predicate, t.Object, i == len(s.Triples)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

// NTriples serializes doc in N-Triples format.
func (e *RDFExporter) NTriples(doc *Document) string {
	w := NewNTriplesWriter()
	for _, s := range e.Subjects(doc) {
		w.WriteTypeTriple(s.IRI, s.Type)
		for _, t := range s.Triples {
			w.WriteTriple(t.Subject, t.Predicate, t.Object)
		}
	}
	return w.String()
}

// formatObject formats an object value for Turtle and N-Triples output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", v)
	case Literal:
		if v.Lang != "" {
			return fmt.Sprintf("\"%s\"@%s", escapeString(v.Value), v.Lang)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v.Value))
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<%sinteger>", v, xsdNamespacePrefix)
	case bool:
		return fmt.Sprintf("\"%t\"^^<%sboolean>", v, xsdNamespacePrefix)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
