// Package metrics provides Prometheus metrics for the comparison engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomcompare_sessions_total",
			Help: "Total number of comparison sessions",
		},
		[]string{"status"},
	)

	DocumentsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomcompare_documents_parsed_total",
			Help: "Total number of BOM documents parsed",
		},
		[]string{"format", "role"},
	)

	RowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bomcompare_rows_dropped_total",
			Help: "Total number of data rows dropped during normalization",
		},
	)

	CompareDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bomcompare_session_duration_seconds",
			Help:    "Time taken to run a full comparison session",
			Buckets: prometheus.DefBuckets,
		},
	)
)
