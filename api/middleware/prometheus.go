package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	friendOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_operations_total",
			Help: "Friend request operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	friendOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "friend_operation_duration_seconds",
			Help:    "Duration of friend request operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status, serviceName).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, serviceName).Observe(duration)
	}
}

// RecordFriendOperation counts one lifecycle call. outcome is a small fixed set
// (ok, invalid, conflict, forbidden, not_found, error) to keep cardinality bounded.
func RecordFriendOperation(operation, outcome string, duration time.Duration) {
	friendOperationsTotal.WithLabelValues(operation, outcome).Inc()
	friendOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
