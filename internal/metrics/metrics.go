// Package metrics provides Prometheus metrics for the catalog matcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchQueriesTotal counts match queries by endpoint
	MatchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scankey",
			Subsystem: "match",
			Name:      "queries_total",
			Help:      "Total number of catalog match queries",
		},
		[]string{"endpoint"},
	)

	// MatchHitsTotal counts hits by match kind
	MatchHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scankey",
			Subsystem: "match",
			Name:      "hits_total",
			Help:      "Total number of catalog hits by match kind",
		},
		[]string{"kind"},
	)

	// MatchBestTotal counts queries by whether a best reference was found
	MatchBestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scankey",
			Subsystem: "match",
			Name:      "best_total",
			Help:      "Total number of queries by best reference outcome",
		},
		[]string{"found"},
	)

	// CatalogReferences tracks the size of the loaded snapshot
	CatalogReferences = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "scankey",
			Subsystem: "catalog",
			Name:      "references",
			Help:      "Number of entries in the loaded catalog snapshot",
		},
		[]string{"set"},
	)

	// CatalogSourcesSkipped counts sources that were missing or unreadable
	CatalogSourcesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scankey",
			Subsystem: "catalog",
			Name:      "sources_skipped_total",
			Help:      "Total number of catalog sources skipped during load",
		},
		[]string{"source"},
	)

	// CatalogLoadDuration tracks how long the single catalog load took
	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scankey",
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Duration of the catalog load in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)
