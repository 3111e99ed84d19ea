package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	AuthRejectionsTotal *prometheus.CounterVec
	LoginsTotal         *prometheus.CounterVec

	// Business metrics
	UsersCreatedTotal prometheus.Counter
	TodosCreatedTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todos_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todos_auth_rejections_total",
				Help: "Requests rejected by the authentication guard",
			},
			[]string{"reason"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todos_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		UsersCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "todos_users_created_total",
				Help: "Total number of user accounts created",
			},
		),
		TodosCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "todos_todos_created_total",
				Help: "Total number of todos created",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthRejectionsTotal,
		m.LoginsTotal,
		m.UsersCreatedTotal,
		m.TodosCreatedTotal,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
