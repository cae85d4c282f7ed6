// Package converter runs the full pipeline: read the source, build concepts,
// serialize the vocabulary and deliver it to the configured sink.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semvocab/concept"
	"github.com/c360studio/semvocab/config"
	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/output"
	"github.com/c360studio/semvocab/source/sheet"
)

// Converter turns one source file into a published vocabulary.
type Converter struct {
	config   *config.Config
	template *export.Envelope
	registry *sheet.Registry
	sink     output.Sink
	metrics  *Metrics
	logger   *slog.Logger

	graphPub     graph.Publisher
	graphSubject string
}

// Option configures a Converter.
type Option func(*Converter)

// WithRegistry replaces the default source registry.
func WithRegistry(r *sheet.Registry) Option {
	return func(c *Converter) { c.registry = r }
}

// WithMetrics records runs in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// WithGraph also publishes every concept as a graph entity on subject.
func WithGraph(pub graph.Publisher, subject string) Option {
	return func(c *Converter) {
		c.graphPub = pub
		c.graphSubject = subject
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// New validates cfg, loads the envelope template and returns a converter
// writing to sink.
func New(cfg *config.Config, sink output.Sink, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfigLoad, err)
	}

	template, err := config.LoadTemplate(cfg.Vocabulary.Template)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		config:   cfg,
		template: template,
		registry: sheet.DefaultRegistry,
		sink:     sink,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c, nil
}

// Summary describes a completed run.
type Summary struct {
	RunID         string
	Source        string
	Format        export.Format
	Bytes         int
	GraphEntities int
	Duration      time.Duration
	Report        concept.Report
}

// Run converts the configured source.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	return c.RunFile(ctx, c.config.Source.Path)
}

// RunFile converts path using the rest of the configuration.
func (c *Converter) RunFile(ctx context.Context, path string) (summary *Summary, err error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := c.logger.With("run_id", runID, "source", path)

	defer func() {
		c.metrics.Duration.Observe(time.Since(start).Seconds())
		if err != nil {
			c.metrics.Runs.WithLabelValues("error").Inc()
			logger.Error("Conversion failed", "error", err)
			return
		}
		c.metrics.Runs.WithLabelValues("ok").Inc()
	}()

	logger.Info("Converting", "format", c.config.Output.Format, "sink", c.config.Output.Sink)

	rows, err := c.readRows(ctx, path)
	if err != nil {
		return nil, err
	}

	builder := concept.NewBuilder(concept.BuilderConfig{
		Namespace: c.config.Vocabulary.Namespace,
		SchemeURI: c.config.Vocabulary.SchemeURI,
		Language:  c.config.Vocabulary.Language,
		Workers:   c.config.Resolve.Workers,
	}, logger)

	result, err := builder.Build(ctx, rows)
	if err != nil {
		return nil, err
	}
	c.record(result.Report)

	scheme := concept.NewScheme(c.config.Vocabulary.SchemeURI, c.config.Vocabulary.SchemeLabel)
	doc := export.NewDocument(c.template, scheme, result.Concepts)

	format := export.Format(c.config.Output.Format)
	data, err := export.Export(doc, format, export.Options{
		Indent:  c.config.Output.Indent,
		Profile: export.Profile(c.config.Output.Profile),
	})
	if err != nil {
		return nil, fmt.Errorf("serialize vocabulary: %w", err)
	}

	if err := c.sink.Write(ctx, path, data); err != nil {
		return nil, fmt.Errorf("deliver vocabulary: %w", err)
	}

	graphed := c.publishGraph(ctx, logger, scheme, result.Concepts)

	summary = &Summary{
		RunID:         runID,
		Source:        path,
		Format:        format,
		Bytes:         len(data),
		GraphEntities: graphed,
		Duration:      time.Since(start),
		Report:        result.Report,
	}
	logger.Info("Vocabulary published",
		"concepts", result.Report.Concepts,
		"rows_skipped", result.Report.RowsSkipped,
		"unresolved", len(result.Report.Unresolved),
		"bytes", len(data),
		"duration", summary.Duration)
	return summary, nil
}

// publishGraph mirrors the delivered vocabulary into the knowledge graph.
// The vocabulary is already delivered, so failures are logged and counted
// but do not fail the run.
func (c *Converter) publishGraph(ctx context.Context, logger *slog.Logger, scheme concept.Scheme, concepts []concept.Concept) int {
	if c.graphPub == nil {
		return 0
	}
	entities := graph.NewEntities(c.config.Vocabulary.SchemeLabel, c.config.Vocabulary.Namespace)
	payloads := entities.Payloads(scheme, concepts, time.Now())
	n, err := graph.Publish(ctx, c.graphPub, c.graphSubject, payloads)
	c.metrics.GraphEntities.Add(float64(n))
	if err != nil {
		c.metrics.GraphFailures.Inc()
		logger.Warn("Graph publication incomplete", "subject", c.graphSubject, "published", n, "total", len(payloads), "error", err)
		return n
	}
	logger.Debug("Graph entities published", "subject", c.graphSubject, "count", n)
	return n
}

func (c *Converter) readRows(ctx context.Context, path string) ([]sheet.Row, error) {
	src := c.config.Source
	reader, err := c.registry.Open(path, sheet.Options{
		Sheets:           src.Sheets,
		StartRow:         src.StartRow,
		CodeColumn:       src.CodeColumn,
		DescriptorColumn: src.DescriptorColumn,
		ChangeColumn:     src.ChangeColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer reader.Close()

	rows, err := reader.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return rows, nil
}

func (c *Converter) record(r concept.Report) {
	c.metrics.RowsRead.Add(float64(r.RowsRead))
	c.metrics.RowsSkipped.Add(float64(r.RowsSkipped))
	c.metrics.Concepts.Set(float64(r.Concepts))
	c.metrics.Duplicates.Set(float64(len(r.Duplicates)))
	for _, u := range r.Unresolved {
		c.metrics.Unresolved.WithLabelValues(u.Relation).Inc()
	}
}
