package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onlycodes"

// Outcome labels for engagement toggles
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitExceededTotal *prometheus.CounterVec

	// Database metrics
	DatabaseQueryDuration *prometheus.HistogramVec
	DatabaseQueriesTotal  *prometheus.CounterVec

	// Feed metrics
	FeedQueriesTotal  *prometheus.CounterVec
	FeedQueryDuration *prometheus.HistogramVec

	// Likes, follows and post tags
	EngagementOpsTotal       *prometheus.CounterVec
	ConflictsSuppressedTotal *prometheus.CounterVec

	// Error metrics
	ErrorsTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "http_requests_total",
					Help:      "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "http_request_duration_seconds",
					Help:      "HTTP request latency in seconds",
					Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "http_response_size_bytes",
					Help:      "HTTP response size in bytes",
					Buckets:   prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveRequests: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: namespace,
					Name:      "http_active_requests",
					Help:      "Number of requests currently being served",
				},
				[]string{"method", "path"},
			),

			RateLimitExceededTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "rate_limit_exceeded_total",
					Help:      "Total number of rate limit violations",
				},
				[]string{"limiter", "path"},
			),

			DatabaseQueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "database_query_duration_seconds",
					Help:      "Database statement latency in seconds",
					Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"operation", "table"},
			),
			DatabaseQueriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "database_queries_total",
					Help:      "Total number of database statements",
				},
				[]string{"operation", "table", "status"},
			),

			FeedQueriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "feed_queries_total",
					Help:      "Feed pages served, by feed and outcome",
				},
				[]string{"feed", "outcome"},
			),
			FeedQueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "feed_query_duration_seconds",
					Help:      "Time to build one feed page in seconds",
					Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"feed"},
			),

			EngagementOpsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "engagement_ops_total",
					Help:      "Like, follow and tag toggles by action and outcome",
				},
				[]string{"action", "outcome"},
			),
			ConflictsSuppressedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "conflicts_suppressed_total",
					Help:      "Unique violations treated as already-satisfied writes",
				},
				[]string{"relation"},
			),

			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "errors_total",
					Help:      "Total number of error responses by code",
				},
				[]string{"code", "path"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}

// RecordFeedQuery records one feed page
func RecordFeedQuery(feed string, d time.Duration, err error) {
	m := Get()
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FeedQueriesTotal.WithLabelValues(feed, outcome).Inc()
	m.FeedQueryDuration.WithLabelValues(feed).Observe(d.Seconds())
}

// RecordEngagement records a like/unlike/follow/unfollow/tag toggle
func RecordEngagement(action, outcome string) {
	Get().EngagementOpsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordConflictSuppressed records a duplicate insert that was treated as success
func RecordConflictSuppressed(relation string) {
	Get().ConflictsSuppressedTotal.WithLabelValues(relation).Inc()
}

// RecordDatabaseQuery records one database statement
func RecordDatabaseQuery(operation, table string, d time.Duration, err error) {
	m := Get()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseQueryDuration.WithLabelValues(operation, table).Observe(d.Seconds())
	m.DatabaseQueriesTotal.WithLabelValues(operation, table, status).Inc()
}

// RecordRateLimitExceeded records a rejected request
func RecordRateLimitExceeded(limiter, path string) {
	Get().RateLimitExceededTotal.WithLabelValues(limiter, path).Inc()
}

// RecordError records an error response
func RecordError(code, path string) {
	Get().ErrorsTotal.WithLabelValues(code, path).Inc()
}
