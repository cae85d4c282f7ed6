// Package code classifies classification-scheme codes into hierarchy tiers.
//
// Codes follow a small grammar: a single character is a top concept, a
// digit-free string is a middle concept, and anything carrying a digit is a
// bottom concept. Bottom codes are further split into the dotted "OJ"
// sub-hierarchy (OJ5.11, OJ5.11.cAbau), bare OJ codes (OJ5) and standard
// leaves (A1, AA23).
package code

import (
	"strings"
	"unicode"
)

// Tier is the hierarchy bucket a code belongs to.
type Tier int

// Tier values, in classification order.
const (
	TierUnknown Tier = iota
	TierTop
	TierMiddle
	TierBottomDottedLeaf
	TierBottomDottedMid
	TierBottomStandardOJ
	TierBottomStandard
)

// OJ is the top code of the dotted sub-hierarchy.
const OJ = "OJ"

var tierNames = map[Tier]string{
	TierUnknown:          "unknown",
	TierTop:              "top",
	TierMiddle:           "middle",
	TierBottomDottedLeaf: "bottom-dotted-leaf",
	TierBottomDottedMid:  "bottom-dotted-mid",
	TierBottomStandardOJ: "bottom-standard-oj",
	TierBottomStandard:   "bottom-standard",
}

// String returns the tier name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return tierNames[TierUnknown]
}

// IsBottom reports whether the tier is one of the bottom variants.
func (t Tier) IsBottom() bool {
	return t >= TierBottomDottedLeaf && t <= TierBottomStandard
}

// Normalize strips every whitespace character from raw.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// Classify returns the tier of a normalized code.
//
// Digit presence is checked before dot presence, so a code with a digit is
// never Middle. Inputs that fit none of the shapes return a
// *ClassificationError.
func Classify(c string) (Tier, error) {
	if c == "" {
		return TierUnknown, &ClassificationError{Code: c, Reason: "empty code"}
	}

	if Len(c) == 1 {
		return TierTop, nil
	}

	dots := strings.Count(c, ".")

	if !HasDigit(c) {
		if dots > 0 {
			return TierUnknown, &ClassificationError{Code: c, Reason: "dotted code without digit"}
		}
		return TierMiddle, nil
	}

	switch {
	case dots == 2:
		return TierBottomDottedLeaf, nil
	case dots == 1:
		return TierBottomDottedMid, nil
	case dots > 2:
		return TierUnknown, &ClassificationError{Code: c, Reason: "more than two dots"}
	case strings.Contains(c, OJ):
		return TierBottomStandardOJ, nil
	default:
		return TierBottomStandard, nil
	}
}

// MustClassify is like Classify but panics on a classification gap.
// Intended for tests and constant tables.
func MustClassify(c string) Tier {
	t, err := Classify(c)
	if err != nil {
		panic(err)
	}
	return t
}

// HasDigit reports whether s contains an ASCII digit.
func HasDigit(s string) bool {
	return strings.ContainsFunc(s, IsDigit)
}

// Len returns the number of characters (runes) in c.
func Len(c string) int {
	return len([]rune(c))
}

// Prefix returns the first n characters of c, or c itself when shorter.
func Prefix(c string, n int) string {
	r := []rune(c)
	if n >= len(r) {
		return c
	}
	return string(r[:n])
}

// At returns the i-th character of c and whether it exists.
func At(c string, i int) (rune, bool) {
	r := []rune(c)
	if i < 0 || i >= len(r) {
		return 0, false
	}
	return r[i], true
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
