// Package hierarchy infers broader/narrower relations between codes of a
// classification scheme from nothing but the codes themselves.
package hierarchy

// CodeSet is the complete, ordered collection of normalized codes of one
// conversion run. It is read-only after construction and safe for concurrent
// use.
type CodeSet struct {
	codes []string
	index map[string]int
}

// NewCodeSet copies codes into a new set. Order is preserved; duplicates are
// kept in place so scan order matches input order.
func NewCodeSet(codes []string) *CodeSet {
	s := &CodeSet{
		codes: make([]string, len(codes)),
		index: make(map[string]int, len(codes)),
	}
	copy(s.codes, codes)
	for i, c := range s.codes {
		if _, ok := s.index[c]; !ok {
			s.index[c] = i
		}
	}
	return s
}

// Len returns the number of codes, duplicates included.
func (s *CodeSet) Len() int {
	return len(s.codes)
}

// At returns the i-th code in input order.
func (s *CodeSet) At(i int) string {
	return s.codes[i]
}

// Codes returns a copy of the codes in input order.
func (s *CodeSet) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Contains reports whether c is a member of the set.
func (s *CodeSet) Contains(c string) bool {
	_, ok := s.index[c]
	return ok
}

// Duplicates returns codes that occur more than once, in order of their
// second occurrence.
func (s *CodeSet) Duplicates() []string {
	seen := make(map[string]int, len(s.codes))
	var dups []string
	for _, c := range s.codes {
		seen[c]++
		if seen[c] == 2 {
			dups = append(dups, c)
		}
	}
	return dups
}
