package hierarchy

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semvocab/code"
)

// Relations holds the broader and narrower codes of one code.
//
// A nil slice serializes as null and means "not reported"; a non-nil empty
// slice means "reported, no entries". Top and middle codes always report a
// narrower list, dotted and OJ codes collapse an empty one to nil.
type Relations struct {
	Tier     code.Tier
	Broader  []string
	Narrower []string
}

// Resolver computes relations against a fixed CodeSet.
type Resolver struct {
	set *CodeSet
}

// NewResolver creates a resolver scanning set.
func NewResolver(set *CodeSet) *Resolver {
	return &Resolver{set: set}
}

// Resolve classifies c and computes its relations.
func (r *Resolver) Resolve(c string) (Relations, error) {
	tier, err := code.Classify(c)
	if err != nil {
		return Relations{}, err
	}
	return r.ResolveTier(c, tier), nil
}

// ResolveTier computes relations for a code whose tier is already known.
func (r *Resolver) ResolveTier(c string, tier code.Tier) Relations {
	rel := Relations{Tier: tier}

	switch tier {
	case code.TierTop:
		rel.Narrower = r.topNarrower(c)

	case code.TierMiddle:
		rel.Broader = []string{code.Prefix(c, 1)}
		rel.Narrower = r.collect(c, func(e string) bool {
			return strings.Contains(e, c) && !strings.Contains(e, ".")
		})

	case code.TierBottomDottedLeaf:
		parts := strings.SplitN(c, ".", 3)
		rel.Broader = []string{parts[0] + "." + parts[1]}

	case code.TierBottomDottedMid:
		parts := strings.SplitN(c, ".", 2)
		rel.Broader = []string{parts[0]}
		rel.Narrower = nilIfEmpty(r.collect(c, func(e string) bool {
			return strings.Contains(e, c)
		}))

	case code.TierBottomStandardOJ:
		rel.Broader = []string{code.OJ}
		rel.Narrower = nilIfEmpty(r.collect(c, func(e string) bool {
			return strings.Contains(e, c) && strings.Count(e, ".") == 1
		}))

	case code.TierBottomStandard:
		rel.Broader = []string{standardParent(c)}
	}

	return rel
}

// topNarrower returns codes starting with the top letter whose second
// character is a digit (A1) or which are two characters long (AA).
func (r *Resolver) topNarrower(c string) []string {
	first, _ := code.At(c, 0)
	return r.collect(c, func(e string) bool {
		if code.Len(e) < 2 {
			return false
		}
		if head, _ := code.At(e, 0); head != first {
			return false
		}
		second, _ := code.At(e, 1)
		return code.IsDigit(second) || code.Len(e) < 3
	})
}

// collect scans the whole set in input order and returns every code other
// than c accepted by match. The result is never nil.
func (r *Resolver) collect(c string, match func(string) bool) []string {
	out := []string{}
	for _, e := range r.set.codes {
		if e == c {
			continue
		}
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

// standardParent returns the owning concept of a standard leaf: the first two
// characters (AA23 -> AA), or the top letter when the second character is
// already a digit (A1 -> A).
func standardParent(c string) string {
	if second, ok := code.At(c, 1); ok && code.IsDigit(second) {
		return code.Prefix(c, 1)
	}
	return code.Prefix(c, 2)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// ResolveAll resolves every code of set and returns relations in set order.
// With workers > 1 codes are resolved concurrently; the set is shared
// read-only so the result is identical to a sequential run.
func ResolveAll(ctx context.Context, set *CodeSet, workers int) ([]Relations, error) {
	r := NewResolver(set)
	out := make([]Relations, set.Len())

	if workers <= 1 {
		for i, c := range set.codes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rel, err := r.Resolve(c)
			if err != nil {
				return nil, fmt.Errorf("resolve code %d: %w", i, err)
			}
			out[i] = rel
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range set.codes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel, err := r.Resolve(c)
			if err != nil {
				return fmt.Errorf("resolve code %d: %w", i, err)
			}
			out[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
