// Package skos provides vocabulary predicates for SKOS concept schemes.
//
// A converted classification scheme is a skos:ConceptScheme holding one
// skos:Concept per code. Concepts carry labels and notes taken from the
// descriptor column and broader/narrower links inferred from the codes.
//
// Predicates use dotted notation internally and map to the standard SKOS
// IRIs for export:
//
//	skos.label.preferred   -> skos:prefLabel
//	skos.relation.broader  -> skos:broader
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/semvocab/vocabulary/skos"
package skos
