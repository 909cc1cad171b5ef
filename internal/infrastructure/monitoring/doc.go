// Package monitoring exposes registry behavior as Prometheus metrics.
//
// Counters track lookups, misses, heals, relocations and repair outcomes;
// gauges track the registered key count and the open issue count from the
// most recent diagnosis. The metrics endpoint is served by the diagnostics
// panel API.
//
// Metrics implements the registry's Observer interface so the core domain
// stays free of a Prometheus dependency.
package monitoring
