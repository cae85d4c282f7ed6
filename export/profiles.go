// Package export serializes converted vocabularies as JSON-LD, Turtle and
// N-Triples.
package export

// Profile determines which optional triples are included in RDF exports.
// JSON-LD output always has the fixed concept shape.
type Profile string

const (
	// ProfileMinimal includes only the fields of the JSON-LD concept shape.
	ProfileMinimal Profile = "minimal"

	// ProfileExtended adds skos:notation and top-concept links.
	ProfileExtended Profile = "extended"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeNotation emits the code as skos:notation.
	IncludeNotation bool

	// IncludeTopConcepts emits skos:topConceptOf / skos:hasTopConcept for
	// concepts without a broader concept.
	IncludeTopConcepts bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "Concept fields as published in JSON-LD",
	},
	ProfileExtended: {
		Name:               ProfileExtended,
		Description:        "Adds notations and top-concept links",
		IncludeNotation:    true,
		IncludeTopConcepts: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
// Unknown profiles fall back to ProfileMinimal.
func GetProfileConfig(profile Profile) ProfileConfig {
	if cfg, ok := Profiles[profile]; ok {
		return cfg
	}
	return Profiles[ProfileMinimal]
}

// ValidProfile reports whether profile is known.
func ValidProfile(profile Profile) bool {
	_, ok := Profiles[profile]
	return ok
}
