package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion service

var (
	// Stats feed API metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadfs_api_calls_total",
			Help: "Total number of stats feed API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbadfs_api_call_duration_seconds",
			Help:    "Duration of stats feed API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Database metrics
	RowsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadfs_rows_upserted_total",
			Help: "Total number of rows upserted by table",
		},
		[]string{"table"},
	)

	// Ingestion metrics
	RecordsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadfs_records_resolved_total",
			Help: "Total number of source records successfully resolved",
		},
		[]string{"importer"},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadfs_records_skipped_total",
			Help: "Total number of source records skipped on resolution miss",
		},
		[]string{"importer", "reason"},
	)

	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbadfs_import_duration_seconds",
			Help:    "Duration of import batches in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"importer"},
	)

	// Resolver cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nbadfs_cache_hits_total",
			Help: "Total number of resolver cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nbadfs_cache_misses_total",
			Help: "Total number of resolver cache misses",
		},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadfs_uptime_seconds",
			Help: "Worker uptime in seconds",
		},
	)
)
