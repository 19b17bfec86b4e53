// Package metrics exposes the Prometheus collectors of the registry service.
// Every Record* method is safe to call on a nil *Metrics so services and
// tests can run without a registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

// Metrics holds all service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Cajas
	CajasAbiertas      prometheus.Counter
	CajasCerradas      prometheus.Counter
	MovimientosTotal   *prometheus.CounterVec
	ReportesEnviados   *prometheus.CounterVec
	CircuitBreakerOpen *prometheus.GaugeVec
}

// New creates the collectors and registers them with the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	m.CajasAbiertas = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cajas_abiertas_total",
		Help:      "Number of box openings",
	})
	m.CajasCerradas = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cajas_cerradas_total",
		Help:      "Number of box closings",
	})
	m.MovimientosTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movimientos_total",
			Help:      "Ledger entries recorded, by kind (pago|retiro) and method",
		},
		[]string{"tipo", "metodo"},
	)
	m.ReportesEnviados = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reportes_enviados_total",
			Help:      "Daily reports attempted, by result",
		},
		[]string{"resultado"},
	)
	m.CircuitBreakerOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.CajasAbiertas,
		m.CajasCerradas,
		m.MovimientosTotal,
		m.ReportesEnviados,
		m.CircuitBreakerOpen,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) IncInFlight() {
	if m != nil {
		m.HTTPRequestsInFlight.Inc()
	}
}

func (m *Metrics) DecInFlight() {
	if m != nil {
		m.HTTPRequestsInFlight.Dec()
	}
}

func (m *Metrics) RecordCajaAbierta() {
	if m != nil {
		m.CajasAbiertas.Inc()
	}
}

func (m *Metrics) RecordCajaCerrada() {
	if m != nil {
		m.CajasCerradas.Inc()
	}
}

// RecordMovimiento counts a ledger entry. tipo is "pago", "retiro" or
// "transaccion".
func (m *Metrics) RecordMovimiento(tipo, metodo string) {
	if m != nil {
		m.MovimientosTotal.WithLabelValues(tipo, metodo).Inc()
	}
}

// RecordReporte counts a report attempt. resultado is "ok" or "error".
func (m *Metrics) RecordReporte(resultado string) {
	if m != nil {
		m.ReportesEnviados.WithLabelValues(resultado).Inc()
	}
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m != nil {
		m.CircuitBreakerOpen.WithLabelValues(name).Set(float64(state))
	}
}
