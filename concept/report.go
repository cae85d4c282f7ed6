package concept

import "github.com/c360studio/semvocab/code"

// Relation names used in reports.
const (
	RelationBroader  = "broader"
	RelationNarrower = "narrower"
)

// UnresolvedReference is a broader/narrower link whose target code is not
// part of the code set. It is left in the output for data-quality review.
type UnresolvedReference struct {
	Code     string `json:"code"`
	Relation string `json:"relation"`
	Target   string `json:"target"`
	URI      string `json:"uri"`
}

// Report summarizes a build.
type Report struct {
	RowsRead    int                   `json:"rows_read"`
	RowsSkipped int                   `json:"rows_skipped"`
	Concepts    int                   `json:"concepts"`
	Duplicates  []string              `json:"duplicates,omitempty"`
	Unresolved  []UnresolvedReference `json:"unresolved,omitempty"`
	Tiers       map[code.Tier]int     `json:"-"`
}

// Clean reports whether the build produced no data-quality findings.
func (r Report) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.Unresolved) == 0
}
