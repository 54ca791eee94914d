// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package metrics holds the query core's Prometheus instrumentation
// (SPEC_FULL.md §4.K).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryDuration tracks end-to-end Engine.Search latency.
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_query_duration_seconds",
		Help:    "Histogram of end-to-end query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// resultCount tracks how many files a query returned.
	resultCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_query_result_files",
		Help:    "Histogram of result file counts per query",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	// directResultHits/Misses track the direct-result heuristic's hit rate.
	directResultHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "direct_result_hits_total",
		Help: "Total number of queries resolved directly to a single navigation target",
	})
	directResultMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "direct_result_misses_total",
		Help: "Total number of single-term queries that did not resolve to a unique target",
	})

	// queryErrors counts failures by error kind (spec §7).
	queryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "search_query_errors_total",
		Help: "Total number of query failures by error kind",
	}, []string{"kind"})
)

// RecordQuery records a completed full-search query's latency and
// result count.
func RecordQuery(duration time.Duration, fileCount int) {
	queryDuration.Observe(duration.Seconds())
	resultCount.Observe(float64(fileCount))
}

// RecordDirectResult records whether the direct-result heuristic found
// a unique navigation target.
func RecordDirectResult(hit bool) {
	if hit {
		directResultHits.Inc()
		return
	}
	directResultMisses.Inc()
}

// RecordError increments the error counter for the given error kind
// (one of queryerr's MalformedQuery/BadPattern/StoreError/EncodingError
// constants).
func RecordError(kind string) {
	queryErrors.WithLabelValues(kind).Inc()
}
