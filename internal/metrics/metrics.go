// Package metrics exposes Prometheus metrics for the sorter service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muliwe/go-package-sorter/internal/classifier"
)

// Invalid input reasons
const (
	ReasonDimension = "dimension"
	ReasonMass      = "mass"
	ReasonMalformed = "malformed"
)

// Metrics holds all sorter metrics
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ClassificationsTotal *prometheus.CounterVec
	InvalidInputsTotal   *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	Namespace string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig() Config {
	return Config{Namespace: "sorter"}
}

// New creates a new Metrics instance on a private registry
func New(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	m.ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "classifications_total",
			Help:      "Total number of parcels classified, by category",
		},
		[]string{"category"},
	)

	m.InvalidInputsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "invalid_inputs_total",
			Help:      "Total number of classification requests rejected for invalid input",
		},
		[]string{"reason"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ClassificationsTotal,
		m.InvalidInputsTotal,
	)

	// Pre-create category series so dashboards see zeros
	for _, c := range classifier.Categories {
		m.ClassificationsTotal.WithLabelValues(c.String())
	}

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the in-flight gauge
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight gauge
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordClassification counts a successful classification
func (m *Metrics) RecordClassification(c classifier.Category) {
	m.ClassificationsTotal.WithLabelValues(c.String()).Inc()
}

// RecordInvalidInput counts a rejected request
func (m *Metrics) RecordInvalidInput(reason string) {
	m.InvalidInputsTotal.WithLabelValues(reason).Inc()
}
