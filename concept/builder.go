package concept

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/semvocab/code"
	"github.com/c360studio/semvocab/hierarchy"
	"github.com/c360studio/semvocab/source/sheet"
	"github.com/c360studio/semvocab/vocabulary/skos"
)

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Namespace is the base IRI concept URIs are minted in.
	Namespace string

	// SchemeURI is written to every concept's inScheme.
	SchemeURI string

	// Language tags labels and definitions (default "en").
	Language string

	// Workers > 1 resolves the hierarchy concurrently.
	Workers int
}

// Builder produces concept records from rows.
type Builder struct {
	config BuilderConfig
	mapper Mapper
	logger *slog.Logger
}

// Result is the output of one Build call.
type Result struct {
	Concepts []Concept
	Report   Report
}

// NewBuilder creates a concept builder.
func NewBuilder(config BuilderConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Language == "" {
		config.Language = DefaultLanguage
	}
	return &Builder{
		config: config,
		mapper: NewMapper(config.Namespace),
		logger: logger,
	}
}

// Mapper returns the URI mapper used by the builder.
func (b *Builder) Mapper() Mapper {
	return b.mapper
}

// Build converts rows into concepts, in input order.
//
// Rows whose code is blank after normalization are skipped. A code that
// cannot be classified aborts the build. References to codes outside the
// row set are kept and reported.
func (b *Builder) Build(ctx context.Context, rows []sheet.Row) (*Result, error) {
	report := Report{
		RowsRead: len(rows),
		Tiers:    make(map[code.Tier]int),
	}

	kept := make([]sheet.Row, 0, len(rows))
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		c := code.Normalize(row.Code)
		if c == "" {
			report.RowsSkipped++
			b.logger.Debug("Skipping row without code",
				"sheet", row.Sheet,
				"line", row.Line)
			continue
		}
		kept = append(kept, row)
		codes = append(codes, c)
	}

	set := hierarchy.NewCodeSet(codes)
	report.Duplicates = set.Duplicates()
	for _, dup := range report.Duplicates {
		b.logger.Warn("Duplicate code, concept URIs will collide", "code", dup)
	}

	relations, err := hierarchy.ResolveAll(ctx, set, b.config.Workers)
	if err != nil {
		return nil, fmt.Errorf("resolve hierarchy: %w", err)
	}

	concepts := make([]Concept, 0, len(kept))
	for i, row := range kept {
		c := codes[i]
		rel := relations[i]
		report.Tiers[rel.Tier]++

		report.Unresolved = append(report.Unresolved, b.unresolved(set, c, RelationBroader, rel.Broader)...)
		report.Unresolved = append(report.Unresolved, b.unresolved(set, c, RelationNarrower, rel.Narrower)...)

		concepts = append(concepts, b.concept(row, c, rel))
	}
	report.Concepts = len(concepts)

	return &Result{Concepts: concepts, Report: report}, nil
}

// concept assembles one record.
func (b *Builder) concept(row sheet.Row, c string, rel hierarchy.Relations) Concept {
	prefLabel, definition := ParseDescriptor(row.Descriptor, b.config.Language)

	return Concept{
		URI:         b.mapper.URI(c),
		Type:        skos.TypeConcept,
		PrefLabel:   prefLabel,
		AltLabel:    nil,
		Definition:  definition,
		HistoryNote: HistoryNote(row.Descriptor),
		ChangeNote:  ChangeNote(row.Descriptor, row.Change),
		InScheme:    b.config.SchemeURI,
		Broader:     b.mapper.References(rel.Broader),
		Narrower:    b.mapper.References(rel.Narrower),
		Code:        c,
		Tier:        rel.Tier,
	}
}

// unresolved returns references from c to codes missing from the set.
func (b *Builder) unresolved(set *hierarchy.CodeSet, c, relation string, targets []string) []UnresolvedReference {
	var out []UnresolvedReference
	for _, target := range targets {
		if set.Contains(target) {
			continue
		}
		ref := UnresolvedReference{
			Code:     c,
			Relation: relation,
			Target:   target,
			URI:      b.mapper.URI(target),
		}
		b.logger.Warn("Reference to unknown code",
			"code", c,
			"relation", relation,
			"target", target)
		out = append(out, ref)
	}
	return out
}
