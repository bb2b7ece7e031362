// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route, and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datadeck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datadeck_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// EngineOps counts engine operations (query, stats, values, aggregate, sample).
	EngineOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datadeck_engine_operations_total",
			Help: "Total number of engine operations",
		},
		[]string{"operation", "status"},
	)
	// DatasetRows tracks the row count of the currently loaded dataset.
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "datadeck_dataset_rows",
			Help: "Row count of the currently loaded dataset",
		},
	)
)
