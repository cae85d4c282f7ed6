package converter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "semvocab"

// Metrics are the Prometheus collectors updated by conversion runs.
type Metrics struct {
	Runs        *prometheus.CounterVec
	RowsRead    prometheus.Counter
	RowsSkipped prometheus.Counter
	Concepts    prometheus.Gauge
	Duplicates  prometheus.Gauge
	Unresolved  *prometheus.CounterVec
	Duration    prometheus.Histogram

	GraphEntities prometheus.Counter
	GraphFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Conversion runs by result.",
		}, []string{"result"}),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_read_total",
			Help:      "Rows read from source files.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_skipped_total",
			Help:      "Rows skipped because the code cell was blank.",
		}),
		Concepts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "concepts",
			Help:      "Concepts in the last published vocabulary.",
		}),
		Duplicates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "duplicate_codes",
			Help:      "Codes occurring more than once in the last run.",
		}),
		Unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unresolved_references_total",
			Help:      "References to codes missing from the source, by relation.",
		}, []string{"relation"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of conversion runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphEntities: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "graph_entities_published_total",
			Help:      "Concept entities published to the knowledge graph.",
		}),
		GraphFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "graph_publish_failures_total",
			Help:      "Runs whose graph publication failed after the vocabulary was delivered.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Runs, m.RowsRead, m.RowsSkipped, m.Concepts, m.Duplicates, m.Unresolved, m.Duration, m.GraphEntities, m.GraphFailures)
	}
	return m
}
