// Package metrics exposes Prometheus counters for tab operations, exports and
// persistence writes. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tabsmith"

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	tabOps   *prometheus.CounterVec
	exports  prometheus.Counter
	writes   *prometheus.CounterVec
	tabs     prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tabOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tab_operations_total",
			Help:      "Tab store operations by name and outcome (applied or noop).",
		}, []string{"op", "outcome"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Generated HTML documents.",
		}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_writes_total",
			Help:      "Persistence writes by result.",
		}, []string{"result"}),
		tabs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tabs",
			Help:      "Current number of tabs in the collection.",
		}),
	}
	m.registry.MustRegister(
		m.tabOps, m.exports, m.writes, m.tabs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// TabOp records one store operation.
func (m *Metrics) TabOp(op string, applied bool) {
	if m == nil {
		return
	}
	outcome := "noop"
	if applied {
		outcome = "applied"
	}
	m.tabOps.WithLabelValues(op, outcome).Inc()
}

// Export records one generated document.
func (m *Metrics) Export() {
	if m == nil {
		return
	}
	m.exports.Inc()
}

// PersistWrite records the result of one persistence write.
func (m *Metrics) PersistWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.writes.WithLabelValues(result).Inc()
}

// SetTabs records the current collection size.
func (m *Metrics) SetTabs(n int) {
	if m == nil {
		return
	}
	m.tabs.Set(float64(n))
}
