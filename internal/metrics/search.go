// Package metrics defines the Prometheus collectors of the voter directory.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voter_directory"

// Search and index Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"ward", "mode"}, // mode: "ranked" / "browse"
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of records returned by a search before pagination",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"ward"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	IndexBuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_build_duration_seconds",
			Help:      "Search index build duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"ward"},
	)

	IndexRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_records",
			Help:      "Number of records in a search index",
		},
		[]string{"ward"},
	)

	ReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Dataset reload attempts",
		},
		[]string{"status"}, // "success" / "failure"
	)
)

func init() {
	prometheus.MustRegister(
		SearchDuration,
		SearchResults,
		SearchCacheTotal,
		IndexBuildDuration,
		IndexRecords,
		ReloadsTotal,
	)
}

// ObserveSearch records one search.
func ObserveSearch(ward, mode string, took time.Duration, results int) {
	SearchDuration.WithLabelValues(ward, mode).Observe(took.Seconds())
	SearchResults.WithLabelValues(ward).Observe(float64(results))
}

// ObserveCache records a result cache lookup.
func ObserveCache(hit bool) {
	if hit {
		SearchCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	SearchCacheTotal.WithLabelValues("miss").Inc()
}

// ObserveIndexBuild records a finished index build.
func ObserveIndexBuild(ward string, took time.Duration, records int) {
	IndexBuildDuration.WithLabelValues(ward).Observe(took.Seconds())
	IndexRecords.WithLabelValues(ward).Set(float64(records))
}

// ObserveReload records a dataset reload attempt.
func ObserveReload(err error) {
	if err != nil {
		ReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	ReloadsTotal.WithLabelValues("success").Inc()
}
