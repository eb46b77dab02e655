// Package metric provides Prometheus metrics for process-sentinel.
package metric

import "github.com/prometheus/client_golang/prometheus"

// Collector adapts a read callback into a prometheus.Collector. It
// serves gauges that are cheaper to read at scrape time than to keep
// updated, like the live observer count.
type Collector struct {
	desc *prometheus.Desc
	read func() float64
}

// NewCollector creates a collector exposing a single gauge whose
// value is read on every scrape.
func NewCollector(name, help string, read func() float64) *Collector {
	return &Collector{
		desc: prometheus.NewDesc(name, help, nil, nil),
		read: read,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, c.read())
}
