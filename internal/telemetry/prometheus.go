// Package telemetry wires the search engine's counters and admission
// events to Prometheus and optional InfluxDB sinks, and serves a
// Prometheus `/metrics` endpoint plus a liveness probe (SPEC_FULL.md §9,
// §10). None of this changes search semantics: the engine only ever
// talks to the small search.Metrics/search.Emitter interfaces, and this
// package is one implementation of each.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetrics implements search.Metrics, grounded on the teacher's
// internal/o11y.MetricManager (GaugeVec/CounterVec construction and
// per-run label convention), adapted from push-gateway delivery to a
// locally registered, pull-scraped registry since SPEC_FULL.md §6 calls
// for a served `/metrics` endpoint rather than a pushgateway.
type PrometheusMetrics struct {
	iterations  prometheus.Counter
	expansions  prometheus.Counter
	generations prometheus.Counter
	openSize    prometheus.Gauge
}

// NewPrometheusMetrics registers boand's counters/gauges against reg,
// tagged with runID so multiple runs scraped by the same collector (a
// batch of searches sharing one solution folder) can be told apart.
func NewPrometheusMetrics(reg *prometheus.Registry, runID string) *PrometheusMetrics {
	labels := prometheus.Labels{"run": runID}

	m := &PrometheusMetrics{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "boand_iterations_total",
			Help:        "Open-list pops processed by the search engine.",
			ConstLabels: labels,
		}),
		expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "boand_expansions_total",
			Help:        "Non-closed policies expanded by the search engine.",
			ConstLabels: labels,
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "boand_generations_total",
			Help:        "Child policies produced by policy extension.",
			ConstLabels: labels,
		}),
		openSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "boand_open_list_size",
			Help:        "Current size of the search engine's open list.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(m.iterations, m.expansions, m.generations, m.openSize)
	return m
}

func (m *PrometheusMetrics) IncIterations()  { m.iterations.Inc() }
func (m *PrometheusMetrics) IncExpansions()  { m.expansions.Inc() }
func (m *PrometheusMetrics) IncGenerations() { m.generations.Inc() }
func (m *PrometheusMetrics) SetOpenSize(n int) {
	m.openSize.Set(float64(n))
}
