package watch

import (
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/blake3"
)

// Matcher selects the files that trigger a conversion.
type Matcher struct {
	patterns []string // absolute, slash-separated
	roots    []string // static directory prefix of each pattern
}

// NewMatcher compiles doublestar patterns. Relative patterns are resolved
// against the working directory.
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no watch patterns")
	}

	m := &Matcher{}
	seen := make(map[string]bool)
	for _, p := range patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", p, err)
		}
		abs = filepath.ToSlash(abs)
		if !doublestar.ValidatePattern(abs) {
			return nil, fmt.Errorf("invalid watch pattern: %s", p)
		}
		m.patterns = append(m.patterns, abs)

		base, _ := doublestar.SplitPattern(abs)
		if base == abs {
			// A literal file: watch its directory.
			base = filepath.ToSlash(filepath.Dir(filepath.FromSlash(abs)))
		}
		root := filepath.FromSlash(base)
		if !seen[root] {
			seen[root] = true
			m.roots = append(m.roots, root)
		}
	}
	return m, nil
}

// Roots returns the directories that must be watched.
func (m *Matcher) Roots() []string {
	out := make([]string, len(m.roots))
	copy(out, m.roots)
	return out
}

// Match reports whether the absolute path matches any pattern.
func (m *Matcher) Match(path string) bool {
	name := filepath.ToSlash(path)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// ContentHash returns the BLAKE3 digest of content as hex.
func ContentHash(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}
