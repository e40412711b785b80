// Package metrics provides Prometheus instrumentation for the scoring API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path pattern, and status bucket.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraudradar",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status bucket.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fraudradar",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// TransactionsScoredTotal counts scored transactions by risk level.
	TransactionsScoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraudradar",
			Name:      "transactions_scored_total",
			Help:      "Total transactions scored, by risk level.",
		},
		[]string{"risk_level"},
	)

	// AuthFailuresTotal counts rejected credentials.
	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fraudradar",
			Name:      "auth_failures_total",
			Help:      "Total requests rejected during API key authentication.",
		},
	)

	// MeteringFailuresTotal counts usage-meter writes that were lost.
	MeteringFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fraudradar",
			Name:      "metering_failures_total",
			Help:      "Total usage meter increments that failed and were dropped.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TransactionsScoredTotal,
		AuthFailuresTotal,
		MeteringFailuresTotal,
	)
}

// Handler returns a gin handler serving the Prometheus exposition endpoint
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request counts and latencies per route pattern
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, statusBucket(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func statusBucket(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
