// Package daemon assembles the sentineld process: the termination
// sentinel with its cleanup handlers, a rate-limited background
// worker, the HTTP surface (health, status, Prometheus metrics) and
// live configuration reload.
//
// Components:
//
//   - daemon.go: Daemon assembly and Run loop
//   - server.go: HTTP endpoints
//   - middleware.go: recovery and instrumentation middleware
//   - worker.go: background workload
//
// The daemon registers its cleanup handlers against the sentinel's
// wildcard trigger, so the first termination trigger to arrive,
// whether an interrupt, a fatal error or an explicit exit request,
// drains the worker and stops the HTTP server before the process
// ends.
//
// @design DS-0501
package daemon
