// Package config defines the daemon configuration structure.
//
// @req RQ-0502
// @design DS-0502
package config

import "time"

// DaemonConfig is the root configuration for sentineld.
type DaemonConfig struct {
	Daemon   DaemonSection   `koanf:"daemon"`
	Sentinel SentinelSection `koanf:"sentinel"`
	Worker   WorkerSection   `koanf:"worker"`
	Metrics  MetricsSection  `koanf:"metrics"`
	Log      LogSection      `koanf:"log"`
}

// DaemonSection configures the daemon endpoints.
type DaemonSection struct {
	// Listen is the HTTP bind address for health, status and
	// metrics endpoints.
	Listen string `koanf:"listen"`
}

// SentinelSection configures termination behavior.
type SentinelSection struct {
	// Timeout is the grace period a cleanup handler gets before the
	// process is forced down.
	Timeout time.Duration `koanf:"timeout"`
}

// WorkerSection configures the background workload.
type WorkerSection struct {
	// Rate is the number of work units processed per second.
	Rate float64 `koanf:"rate"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`
}

// MetricsSection configures Prometheus exposition.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File enables logging to a rotated file in addition to stderr.
	File string `koanf:"file"`

	// FileMaxSizeMB is the rotation threshold for File.
	FileMaxSizeMB int `koanf:"file_max_size_mb"`
}
