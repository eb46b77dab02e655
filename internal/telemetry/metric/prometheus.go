// Package metric provides Prometheus metrics for process-sentinel.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Termination metrics
	Occasions       *prometheus.CounterVec
	HandlersInvoked *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
	HandlerTimeouts *prometheus.CounterVec
	HandlerDuration *prometheus.HistogramVec
	Vetoes          *prometheus.CounterVec
	Terminations    *prometheus.CounterVec
	Halting         prometheus.Gauge

	// Daemon metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	WorkerUnits     prometheus.Counter
}

// NewRegistry creates a metrics registry with all application metrics
// and the standard Go runtime and process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		registry: reg,
		Occasions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_occasions_total",
			Help: "Termination occasions fired, by trigger.",
		}, []string{"trigger"}),
		HandlersInvoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_handlers_invoked_total",
			Help: "Cleanup handler invocations, by trigger.",
		}, []string{"trigger"}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_handler_failures_total",
			Help: "Cleanup handlers that returned an error or panicked, by trigger.",
		}, []string{"trigger"}),
		HandlerTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_handler_timeouts_total",
			Help: "Cleanup handlers killed by the grace timeout, by trigger.",
		}, []string{"trigger"}),
		HandlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_handler_duration_seconds",
			Help:    "Cleanup handler run time, by trigger.",
			Buckets: prometheus.DefBuckets,
		}, []string{"trigger"}),
		Vetoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_vetoes_total",
			Help: "Terminations vetoed by a handler, by trigger.",
		}, []string{"trigger"}),
		Terminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_terminations_total",
			Help: "Termination decisions carried out, by outcome.",
		}, []string{"outcome"}),
		Halting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_halting",
			Help: "1 once any termination trigger has fired.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_requests_total",
			Help: "HTTP requests served, by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_request_duration_seconds",
			Help:    "HTTP request latency, by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		WorkerUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_worker_units_total",
			Help: "Work units processed by the demo worker.",
		}),
	}

	reg.MustRegister(
		r.Occasions,
		r.HandlersInvoked,
		r.HandlerFailures,
		r.HandlerTimeouts,
		r.HandlerDuration,
		r.Vetoes,
		r.Terminations,
		r.Halting,
		r.RequestsTotal,
		r.RequestDuration,
		r.WorkerUnits,
	)
	return r
}

// RecordOccasion counts one fired termination occasion.
func (r *Registry) RecordOccasion(trigger string) {
	r.Occasions.WithLabelValues(trigger).Inc()
	r.Halting.Set(1)
}

// RecordHandlerInvoked counts one cleanup handler invocation.
func (r *Registry) RecordHandlerInvoked(trigger string) {
	r.HandlersInvoked.WithLabelValues(trigger).Inc()
}

// RecordHandlerFailure counts one rejected cleanup handler.
func (r *Registry) RecordHandlerFailure(trigger string) {
	r.HandlerFailures.WithLabelValues(trigger).Inc()
}

// RecordHandlerTimeout counts one timed-out cleanup handler.
func (r *Registry) RecordHandlerTimeout(trigger string) {
	r.HandlerTimeouts.WithLabelValues(trigger).Inc()
}

// ObserveHandlerDuration records how long a cleanup handler ran.
func (r *Registry) ObserveHandlerDuration(trigger string, seconds float64) {
	r.HandlerDuration.WithLabelValues(trigger).Observe(seconds)
}

// RecordVeto counts one vetoed termination.
func (r *Registry) RecordVeto(trigger string) {
	r.Vetoes.WithLabelValues(trigger).Inc()
}

// RecordTermination counts one carried-out termination decision.
func (r *Registry) RecordTermination(outcome string) {
	r.Terminations.WithLabelValues(outcome).Inc()
}

// RecordRequest counts one served HTTP request.
func (r *Registry) RecordRequest(method, path, status string) {
	r.RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveRequestDuration records the latency of one HTTP request.
func (r *Registry) ObserveRequestDuration(method, path string, seconds float64) {
	r.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncWorkerUnits counts one processed work unit.
func (r *Registry) IncWorkerUnits() {
	r.WorkerUnits.Inc()
}

// Register adds a custom collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Handler returns an HTTP handler serving this registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide metrics registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns the HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
