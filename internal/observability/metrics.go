// Package observability exposes Prometheus metrics for commands and the overlay.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamtasks/internal/commands"
	"streamtasks/internal/firebot"
)

// Metrics groups all Prometheus instruments used by the server.
type Metrics struct {
	registry *prometheus.Registry

	Commands       *prometheus.CounterVec
	Effects        *prometheus.CounterVec
	OverlayClients prometheus.Gauge
	DocumentReads  *prometheus.CounterVec
}

// NewMetrics creates metrics on a private registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := func(c prometheus.Collector) prometheus.Collector {
		reg.MustRegister(c)
		return c
	}

	return &Metrics{
		registry: reg,
		Commands: factory(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Script invocations by command and outcome.",
		}, []string{"command", "outcome"})).(*prometheus.CounterVec),
		Effects: factory(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_total",
			Help:      "Effects produced by type.",
		}, []string{"type"})).(*prometheus.CounterVec),
		OverlayClients: factory(prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_clients",
			Help:      "Connected overlay websocket clients.",
		})).(prometheus.Gauge),
		DocumentReads: factory(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_reads_total",
			Help:      "Overlay document reads by result.",
		}, []string{"result"})).(*prometheus.CounterVec),
	}
}

// ObserveCommand implements script.Observer.
func (m *Metrics) ObserveCommand(command string, outcome commands.Outcome, effects []firebot.Effect) {
	m.Commands.WithLabelValues(command, string(outcome)).Inc()
	for _, e := range effects {
		m.Effects.WithLabelValues(e.Type).Inc()
	}
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
