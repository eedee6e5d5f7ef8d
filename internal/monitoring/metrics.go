package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics holds all Prometheus metrics. Each instance carries its own
// registry so tests can construct collectors freely.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SessionsStored    prometheus.Gauge
	SessionsCollapsed prometheus.Counter
	SessionsRestored  prometheus.Counter

	TabsClosed  prometheus.Counter
	TabsMoved   prometheus.Counter
	TabsCreated prometheus.Counter
	BatchChunks prometheus.Counter

	BridgeConnections prometheus.Gauge

	startTime time.Time
}

// NewMetrics creates a metrics collector with a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabhoarder_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tabhoarder_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		SessionsStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tabhoarder_sessions_stored",
			Help: "Number of collapsed sessions currently stored",
		}),
		SessionsCollapsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_sessions_collapsed_total",
			Help: "Total sessions created by collapsing tab sets",
		}),
		SessionsRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_sessions_restored_total",
			Help: "Total sessions restored into a window",
		}),

		TabsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_tabs_closed_total",
			Help: "Total tabs closed through the sink",
		}),
		TabsMoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_tabs_moved_total",
			Help: "Total tab move requests applied",
		}),
		TabsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_tabs_created_total",
			Help: "Total tabs created through the sink",
		}),
		BatchChunks: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabhoarder_batch_chunks_total",
			Help: "Total batch chunks executed",
		}),

		BridgeConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tabhoarder_bridge_connections",
			Help: "Connected browser windows",
		}),
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Uptime reports time since the collector was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
