package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the registry.
type Metrics struct {
	LookupsTotal     *prometheus.CounterVec
	HealsTotal       prometheus.Counter
	RelocationsTotal prometheus.Counter
	RepairsTotal     *prometheus.CounterVec

	RegisteredKeys prometheus.Gauge
	OpenIssues     *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector on its own Prometheus registry,
// so several suite processes on one host never fight over the default
// registerer.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := func(c prometheus.Collector) {
		reg.MustRegister(c)
	}

	m := &Metrics{
		registry: reg,
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathregistry_lookups_total",
				Help: "Path lookups by outcome",
			},
			[]string{"outcome"},
		),
		HealsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pathregistry_heals_total",
				Help: "Inline directory or parent creations during lookup",
			},
		),
		RelocationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pathregistry_relocations_total",
				Help: "Lookups satisfied by the alternative-location search",
			},
		),
		RepairsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathregistry_repairs_total",
				Help: "Auto-repair actions by result",
			},
			[]string{"result"},
		),
		RegisteredKeys: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pathregistry_registered_keys",
				Help: "Number of keys currently stored",
			},
		),
		OpenIssues: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pathregistry_open_issues",
				Help: "Issues found by the most recent diagnosis, by severity",
			},
			[]string{"severity"},
		),
	}

	factory(m.LookupsTotal)
	factory(m.HealsTotal)
	factory(m.RelocationsTotal)
	factory(m.RepairsTotal)
	factory(m.RegisteredKeys)
	factory(m.OpenIssues)
	return m
}

// Registry returns the underlying Prometheus registry for the /metrics
// handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// LookupHit implements registry.Observer.
func (m *Metrics) LookupHit() {
	m.LookupsTotal.WithLabelValues("hit").Inc()
}

// LookupMiss implements registry.Observer.
func (m *Metrics) LookupMiss() {
	m.LookupsTotal.WithLabelValues("miss").Inc()
}

// Healed implements registry.Observer.
func (m *Metrics) Healed() {
	m.HealsTotal.Inc()
}

// Relocated implements registry.Observer.
func (m *Metrics) Relocated() {
	m.RelocationsTotal.Inc()
}

// KeyCount implements registry.Observer.
func (m *Metrics) KeyCount(n int) {
	m.RegisteredKeys.Set(float64(n))
}

// RecordRepair tallies one repair pass.
func (m *Metrics) RecordRepair(repaired, failed int) {
	m.RepairsTotal.WithLabelValues("repaired").Add(float64(repaired))
	m.RepairsTotal.WithLabelValues("failed").Add(float64(failed))
}

// RecordDiagnosis publishes the issue counts of a diagnosis run.
func (m *Metrics) RecordDiagnosis(high, medium int) {
	m.OpenIssues.WithLabelValues("high").Set(float64(high))
	m.OpenIssues.WithLabelValues("medium").Set(float64(medium))
}
