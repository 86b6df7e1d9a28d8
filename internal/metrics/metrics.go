package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	httpRequestsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Outbound calls to third-party APIs",
		},
		[]string{"upstream", "op", "status"},
	)

	upstreamRequestsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_requests_duration_seconds",
			Help:    "Outbound call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "op"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestsDuration, upstreamRequestsTotal, upstreamRequestsDuration)
}

// Middleware records request count and latency per gin route pattern
func Middleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(serviceName, c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestsDuration.WithLabelValues(serviceName, c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveUpstream records one outbound call. status is the HTTP status, or 0
// when the request never got a response.
func ObserveUpstream(upstream, op string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequestsTotal.WithLabelValues(upstream, op, label).Inc()
	upstreamRequestsDuration.WithLabelValues(upstream, op).Observe(time.Since(start).Seconds())
}
