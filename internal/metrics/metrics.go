package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the registry
type Metrics struct {
	BanksCreated    prometheus.Counter
	BanksDeleted    prometheus.Counter
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BanksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bank_registry_banks_created_total",
			Help: "Total number of banks created in the registry",
		}),
		BanksDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bank_registry_banks_deleted_total",
			Help: "Total number of banks deleted from the registry",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_registry_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_registry_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}
}

// IncrementBanksCreated records a successful bank creation.
func (m *Metrics) IncrementBanksCreated() {
	if m == nil {
		return
	}
	m.BanksCreated.Inc()
}

// IncrementBanksDeleted records a successful bank deletion.
func (m *Metrics) IncrementBanksDeleted() {
	if m == nil {
		return
	}
	m.BanksDeleted.Inc()
}

// ObserveRequest records a finished HTTP request.
// Call with time.Now() taken before the handler chain ran.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
