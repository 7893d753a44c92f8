// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/dreamteam/stockme-dashboard/internal/observability/errors"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics groups the collectors used across the dashboard.
type Metrics struct {
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	AuthAttempts *prometheus.CounterVec
	Sessions     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates a Metrics instance registered on a fresh registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves from gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockme_backend_requests_total",
				Help: "Calls made to the inventory backend API",
			},
			[]string{"method", "route", "status"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockme_backend_request_duration_seconds",
				Help:    "Inventory backend API call latency in seconds",
				Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
			},
			[]string{"method", "route"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockme_http_requests_total",
				Help: "HTTP requests served by the dashboard",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockme_http_request_duration_seconds",
				Help:    "Dashboard HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockme_auth_attempts_total",
				Help: "Sign-in and registration attempts",
			},
			[]string{"kind", "result", "error_class"},
		),
		Sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockme_session_resolutions_total",
				Help: "Session cookie resolutions by outcome",
			},
			[]string{"result"},
		),
		gatherer: gatherer,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveBackend records one backend API call. status is 0 when no response arrived.
func (m *Metrics) ObserveBackend(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.BackendRequests.WithLabelValues(method, route, code).Inc()
	m.BackendDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveAuth records a login or register attempt.
func (m *Metrics) ObserveAuth(kind string, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.AuthAttempts.WithLabelValues(kind, result, obserrors.Classify(err)).Inc()
}

// ObserveSession records the outcome of a session lookup ("valid", "absent", "invalid").
func (m *Metrics) ObserveSession(result string) {
	if m == nil {
		return
	}
	m.Sessions.WithLabelValues(result).Inc()
}
