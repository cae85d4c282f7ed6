package skos

// Namespace is the SKOS core namespace.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// Prefix is the compact prefix used for SKOS terms in JSON-LD output.
const Prefix = "skos"

// Class IRIs.
const (
	// ClassConcept is an idea or notion; a unit of thought.
	ClassConcept = Namespace + "Concept"

	// ClassConceptScheme is an aggregation of one or more concepts.
	ClassConceptScheme = Namespace + "ConceptScheme"
)

// Compact type names as they appear in the "type" field of graph nodes.
const (
	TypeConcept       = Prefix + ":Concept"
	TypeConceptScheme = Prefix + ":ConceptScheme"
)

// Property IRIs not covered by the shared standards table.
const (
	PropDefinition   = Namespace + "definition"
	PropHistoryNote  = Namespace + "historyNote"
	PropChangeNote   = Namespace + "changeNote"
	PropInScheme     = Namespace + "inScheme"
	PropTopConceptOf = Namespace + "topConceptOf"
)

// RDFType is the rdf:type predicate.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
