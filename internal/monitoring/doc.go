// Package monitoring provides Prometheus metrics for the backend:
// HTTP request counters and latencies, session archive activity, tab
// sink throughput, and bridge connection gauges.
package monitoring
