// Package config defines the daemon configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultListen = "127.0.0.1:8125"

	DefaultGraceTimeout = 3 * time.Second

	DefaultWorkerRate  = 10.0
	DefaultWorkerBurst = 1

	DefaultMetricsPath = "/metrics"

	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultLogFileMaxSizeMB = 10
)

// Default returns the default daemon configuration.
func Default() *DaemonConfig {
	return &DaemonConfig{
		Daemon: DaemonSection{
			Listen: DefaultListen,
		},
		Sentinel: SentinelSection{
			Timeout: DefaultGraceTimeout,
		},
		Worker: WorkerSection{
			Rate:  DefaultWorkerRate,
			Burst: DefaultWorkerBurst,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Log: LogSection{
			Level:         DefaultLogLevel,
			Format:        DefaultLogFormat,
			FileMaxSizeMB: DefaultLogFileMaxSizeMB,
		},
	}
}
