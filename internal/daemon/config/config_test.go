// Package config defines the daemon configuration structure.
package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Daemon.Listen != DefaultListen {
		t.Errorf("Daemon.Listen = %q, want %q", cfg.Daemon.Listen, DefaultListen)
	}
	if cfg.Sentinel.Timeout != DefaultGraceTimeout {
		t.Errorf("Sentinel.Timeout = %v, want %v", cfg.Sentinel.Timeout, DefaultGraceTimeout)
	}
	if cfg.Worker.Rate != DefaultWorkerRate {
		t.Errorf("Worker.Rate = %v, want %v", cfg.Worker.Rate, DefaultWorkerRate)
	}
	if cfg.Worker.Burst != DefaultWorkerBurst {
		t.Errorf("Worker.Burst = %d, want %d", cfg.Worker.Burst, DefaultWorkerBurst)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Log.FileMaxSizeMB != DefaultLogFileMaxSizeMB {
		t.Errorf("Log.FileMaxSizeMB = %d, want %d", cfg.Log.FileMaxSizeMB, DefaultLogFileMaxSizeMB)
	}
}

func TestVerify_ValidConfig(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify failed for defaults: %v", err)
	}
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DaemonConfig)
	}{
		{
			name:   "empty listen",
			mutate: func(c *DaemonConfig) { c.Daemon.Listen = "" },
		},
		{
			name:   "listen without port",
			mutate: func(c *DaemonConfig) { c.Daemon.Listen = "127.0.0.1" },
		},
		{
			name:   "zero timeout",
			mutate: func(c *DaemonConfig) { c.Sentinel.Timeout = 0 },
		},
		{
			name:   "negative timeout",
			mutate: func(c *DaemonConfig) { c.Sentinel.Timeout = -time.Second },
		},
		{
			name:   "zero worker rate",
			mutate: func(c *DaemonConfig) { c.Worker.Rate = 0 },
		},
		{
			name:   "zero worker burst",
			mutate: func(c *DaemonConfig) { c.Worker.Burst = 0 },
		},
		{
			name:   "metrics path without slash",
			mutate: func(c *DaemonConfig) { c.Metrics.Path = "metrics" },
		},
		{
			name:   "unknown log level",
			mutate: func(c *DaemonConfig) { c.Log.Level = "verbose" },
		},
		{
			name:   "unknown log format",
			mutate: func(c *DaemonConfig) { c.Log.Format = "xml" },
		},
		{
			name: "log file with zero rotation size",
			mutate: func(c *DaemonConfig) {
				c.Log.File = "/var/log/sentineld.log"
				c.Log.FileMaxSizeMB = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Verify(cfg); err == nil {
				t.Error("Verify() = nil, want error")
			}
		})
	}
}

func TestVerify_MetricsDisabledSkipsPathCheck(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Path = ""

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestDaemonConfig_Struct(t *testing.T) {
	cfg := DaemonConfig{
		Daemon: DaemonSection{
			Listen: "0.0.0.0:9125",
		},
		Sentinel: SentinelSection{
			Timeout: 10 * time.Second,
		},
		Worker: WorkerSection{
			Rate:  50,
			Burst: 8,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    "/internal/metrics",
		},
		Log: LogSection{
			Level:         "debug",
			Format:        "text",
			File:          "/var/log/sentineld.log",
			FileMaxSizeMB: 25,
		},
	}

	if cfg.Daemon.Listen != "0.0.0.0:9125" {
		t.Error("Listen not set correctly")
	}
	if cfg.Sentinel.Timeout != 10*time.Second {
		t.Error("Timeout not set correctly")
	}
	if cfg.Worker.Burst != 8 {
		t.Error("Burst not set correctly")
	}
	if cfg.Log.File == "" {
		t.Error("File not set correctly")
	}
}
