// Package metrics exposes device and configuration state to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audiobridge"

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	devices           *prometheus.GaugeVec
	backendEnabled    *prometheus.GaugeVec
	configDiagnostics *prometheus.CounterVec
	configReloads     prometheus.Counter
	backendFailures   *prometheus.CounterVec
}

// New creates the metrics, including Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		devices: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "devices",
			Help:      "Devices in the aggregated list per backend",
		}, []string{"backend"}),
		backendEnabled: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_enabled",
			Help:      "Whether a backend is enabled in RS_ASIO.ini (1) or not (0)",
		}, []string{"backend"}),
		configDiagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_diagnostics_total",
			Help:      "Parse problems logged while reading RS_ASIO.ini",
		}, []string{"kind"}),
		configReloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Times RS_ASIO.ini was re-read after a change",
		}),
		backendFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_failures_total",
			Help:      "Backends omitted at setup or failing to list devices",
		}, []string{"backend"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetDevices replaces the per-backend device gauge. Backends missing from
// counts are removed.
func (m *Metrics) SetDevices(counts map[string]int) {
	m.devices.Reset()
	for backend, n := range counts {
		m.devices.WithLabelValues(backend).Set(float64(n))
	}
}

// SetBackendEnabled records a backend toggle.
func (m *Metrics) SetBackendEnabled(backend string, enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	m.backendEnabled.WithLabelValues(backend).Set(v)
}

// AddDiagnostics counts n parse problems of kind.
func (m *Metrics) AddDiagnostics(kind string, n int) {
	if n > 0 {
		m.configDiagnostics.WithLabelValues(kind).Add(float64(n))
	}
}

// IncReloads counts a configuration reload.
func (m *Metrics) IncReloads() {
	m.configReloads.Inc()
}

// IncBackendFailures counts a backend failure.
func (m *Metrics) IncBackendFailures(backend string) {
	m.backendFailures.WithLabelValues(backend).Inc()
}
