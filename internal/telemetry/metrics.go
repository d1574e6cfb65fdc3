package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ClassificationsTotal counts service records classified, by resulting kind and matching rule
	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "classifications_total",
			Help:      "Total number of service records classified",
		},
		[]string{"kind", "rule"},
	)

	// RateResolutionsTotal counts station rate resolutions
	RateResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "rate_resolutions_total",
			Help:      "Total number of station link rates resolved",
		},
		[]string{"estimated"},
	)

	// EncodeFailuresTotal counts profiles refused by the encoder
	EncodeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "encode_failures_total",
			Help:      "Total number of security profiles that could not be encoded",
		},
	)

	// ValidationFailuresTotal counts service payloads rejected before submission
	ValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "validation_failures_total",
			Help:      "Total number of service payloads rejected by validation",
		},
	)

	// ControllerRequestsTotal counts requests sent to the wireless controller
	ControllerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "controller_requests_total",
			Help:      "Total number of requests sent to the wireless controller",
		},
		[]string{"endpoint", "status"},
	)

	// ControllerRequestDuration observes controller round-trip latency
	ControllerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wdash",
			Name:      "controller_request_duration_seconds",
			Help:      "Latency of wireless controller requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// SnapshotsDropped counts rate snapshots dropped because the queue was full
	SnapshotsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wdash",
			Name:      "snapshots_dropped_total",
			Help:      "Total number of rate snapshots dropped before persistence",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// It is idempotent.
func InitMetrics() {
	once.Do(func() {
		// Errors are ignored so a metric already in the registry does not panic.
		prometheus.DefaultRegisterer.Register(ClassificationsTotal)
		prometheus.DefaultRegisterer.Register(RateResolutionsTotal)
		prometheus.DefaultRegisterer.Register(EncodeFailuresTotal)
		prometheus.DefaultRegisterer.Register(ValidationFailuresTotal)
		prometheus.DefaultRegisterer.Register(ControllerRequestsTotal)
		prometheus.DefaultRegisterer.Register(ControllerRequestDuration)
		prometheus.DefaultRegisterer.Register(SnapshotsDropped)
	})
}
