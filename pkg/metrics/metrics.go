package metrics

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
			Name: "kioskd_http_requests_total",
			Help: "Total number of UI API requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kioskd_http_request_duration_seconds",
			Help:    "Duration of UI API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kioskd_order_operations_total",
			Help: "Total number of order operations against the backend",
		},
		[]string{"operation", "status"},
	)

	sessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kioskd_session_events_total",
			Help: "Total number of kiosk session lifecycle events",
		},
		[]string{"event"},
	)

	bridgeCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kioskd_bridge_call_duration_seconds",
			Help:    "Duration of RPC bridge round-trips",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"rpc", "status"},
	)
)

// Middleware collects Prometheus metrics for the UI API
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordOrderOperation records an order operation outcome
func RecordOrderOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	orderOperations.WithLabelValues(operation, status).Inc()
}

// RecordSessionEvent records a session lifecycle event (started, resumed,
// expired, reset, heartbeat_lost)
func RecordSessionEvent(event string) {
	sessionEvents.WithLabelValues(event).Inc()
}

// ObserveBridgeCall records the duration and outcome of one bridge round-trip
func ObserveBridgeCall(rpc string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	bridgeCallDuration.WithLabelValues(rpc, status).Observe(d.Seconds())
}
