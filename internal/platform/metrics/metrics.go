package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Dashboard metrics
	DashboardRecomputesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_recomputes_total",
			Help: "Total number of dashboard recomputations by filter scope and outcome",
		},
		[]string{"scope", "outcome"},
	)

	DashboardRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_recompute_duration_seconds",
			Help:    "Time spent computing one dashboard",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of delivery records loaded at startup",
		},
	)

	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_live_sessions",
			Help: "Current number of open websocket dashboard sessions",
		},
	)
)

// RecordHTTPMetrics records one served HTTP request.
func RecordHTTPMetrics(method, path string, status int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HttpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRecompute records one dashboard computation. allSelected picks the scope label
// so user-supplied filter values never become label values.
func RecordRecompute(allSelected bool, err error, duration time.Duration) {
	scope := "vehicle"
	if allSelected {
		scope = "all"
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	DashboardRecomputesTotal.WithLabelValues(scope, outcome).Inc()
	DashboardRecomputeDuration.Observe(duration.Seconds())
}
