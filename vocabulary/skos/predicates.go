package skos

import "github.com/c360studio/semstreams/vocabulary"

// Label predicates, taken from the descriptor column.
const (
	// LabelPreferred is the preferred label: descriptor text before the
	// first period.
	LabelPreferred = "skos.label.preferred"

	// LabelAlternate is an alternative label.
	LabelAlternate = "skos.label.alternate"

	// SchemeLabel is the display label of the concept scheme.
	SchemeLabel = "skos.scheme.label"
)

// Documentation predicates.
const (
	// NoteDefinition is descriptor text after the first period.
	NoteDefinition = "skos.note.definition"

	// NoteHistory is the verbatim descriptor.
	NoteHistory = "skos.note.history"

	// NoteChange is derived from the change-indicator column.
	NoteChange = "skos.note.change"
)

// Relationship predicates between concepts and their scheme.
const (
	// RelationBroader links a concept to its parent.
	// Domain: concept, Range: concept
	RelationBroader = "skos.relation.broader"

	// RelationNarrower links a concept to its children.
	// Domain: concept, Range: concept
	RelationNarrower = "skos.relation.narrower"

	// RelationInScheme links a concept to the scheme it belongs to.
	// Domain: concept, Range: concept scheme
	RelationInScheme = "skos.relation.in_scheme"
)

// PredicateIRIMap maps dotted predicates to SKOS IRIs for export.
var PredicateIRIMap = map[string]string{
	LabelPreferred:   vocabulary.SkosPrefLabel,
	LabelAlternate:   vocabulary.SkosAltLabel,
	SchemeLabel:      vocabulary.RdfsLabel,
	NoteDefinition:   PropDefinition,
	NoteHistory:      PropHistoryNote,
	NoteChange:       PropChangeNote,
	RelationBroader:  vocabulary.SkosBroader,
	RelationNarrower: vocabulary.SkosNarrower,
	RelationInScheme: PropInScheme,
}

// GetPredicateIRI returns the standard IRI for a predicate.
// Unmapped predicates fall back to the SKOS namespace.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	return Namespace + predicate
}

func init() {
	vocabulary.Register(LabelPreferred,
		vocabulary.WithDescription("Preferred lexical label of a concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(LabelAlternate,
		vocabulary.WithDescription("Alternative lexical label of a concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosAltLabel))

	vocabulary.Register(SchemeLabel,
		vocabulary.WithDescription("Display label of the concept scheme"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.RdfsLabel))

	vocabulary.Register(NoteDefinition,
		vocabulary.WithDescription("Statement of the meaning of a concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropDefinition))

	vocabulary.Register(NoteHistory,
		vocabulary.WithDescription("Original descriptor text of a concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropHistoryNote))

	vocabulary.Register(NoteChange,
		vocabulary.WithDescription("Modification recorded for a concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropChangeNote))

	vocabulary.Register(RelationBroader,
		vocabulary.WithDescription("Parent concept inferred from the code"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.SkosBroader))

	vocabulary.Register(RelationNarrower,
		vocabulary.WithDescription("Child concepts inferred from the code set"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(vocabulary.SkosNarrower))

	vocabulary.Register(RelationInScheme,
		vocabulary.WithDescription("Concept scheme the concept belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropInScheme))
}
