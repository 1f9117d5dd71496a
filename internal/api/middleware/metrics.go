package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockbt_http_requests_total",
			Help: "HTTP requests served, by path and status.",
		},
		[]string{"path", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockbt_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	// BacktestsTotal counts completed backtest runs by outcome.
	BacktestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockbt_backtests_total",
			Help: "Backtest runs, by outcome.",
		},
		[]string{"outcome"},
	)
)

// Metrics records request counts and latency per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(path))
		c.Next()
		timer.ObserveDuration()
		requestsTotal.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// MetricsHandler exposes the prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
