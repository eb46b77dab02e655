// Package metric provides Prometheus metrics for process-sentinel.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, helper methods and HTTP handler
//   - collector.go: scrape-time collector for point-in-time gauges
//
// Metrics include:
//
//   - Occasion and handler counters per trigger
//   - Handler duration histograms
//   - Veto and termination outcome counters
//   - Daemon request counters and latency histograms
//
// Metrics are exposed at /metrics in Prometheus format.
//
// @req RQ-0403
// @design DS-0402
package metric
