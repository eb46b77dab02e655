// Package main provides the entry point for sentineld.
//
// The daemon demonstrates coordinated process termination:
//
//   - Signal interception (SIGINT, SIGTERM, SIGQUIT, SIGHUP, SIGABRT)
//   - Cleanup handlers with a guarded grace timeout
//   - HTTP endpoints for health, status and Prometheus metrics
//   - Live reload of log level and grace timeout from the config file
//
// Usage:
//
//	sentineld [flags]
//	sentineld --config /etc/sentineld/sentineld.yaml
//	sentineld --listen 0.0.0.0:8125 --timeout 10s
//
// The daemon loads configuration, wires its cleanup handlers into the
// termination sentinel and serves until a signal or fatal error ends
// the process.
//
// @design DS-0501
package main
