// Package metrics adapta ports.MetricsRecorder a Prometheus y expone el registro para /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/orcamentos-api/internal/application/ports"
)

var _ ports.MetricsRecorder = (*Metrics)(nil)

// Metrics contadores de la API.
type Metrics struct {
	registry *prometheus.Registry

	QuotesTotal         *prometheus.CounterVec
	CatalogUpsertsTotal *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New crea y registra las métricas en registry. Con nil usa un registro nuevo.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		QuotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamentos_quotes_total",
				Help: "Presupuestos calculados por servicio y resultado",
			},
			[]string{"service", "outcome"},
		),
		CatalogUpsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamentos_catalog_upserts_total",
				Help: "Escrituras del catálogo por resultado",
			},
			[]string{"outcome"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamentos_http_requests_total",
				Help: "Peticiones HTTP por método, ruta y status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orcamentos_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	registry.MustRegister(m.QuotesTotal, m.CatalogUpsertsTotal, m.HTTPRequestsTotal, m.HTTPRequestDuration)
	return m
}

// QuoteComputed implementa ports.MetricsRecorder.
func (m *Metrics) QuoteComputed(service, outcome string) {
	m.QuotesTotal.WithLabelValues(service, outcome).Inc()
}

// CatalogUpserted implementa ports.MetricsRecorder.
func (m *Metrics) CatalogUpserted(outcome string) {
	m.CatalogUpsertsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
