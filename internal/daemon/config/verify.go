// Package config defines the daemon configuration structure.
package config

import (
	"errors"
	"net"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *DaemonConfig) error {
	if err := verifyDaemon(&cfg.Daemon); err != nil {
		return err
	}
	if err := verifySentinel(&cfg.Sentinel); err != nil {
		return err
	}
	if err := verifyWorker(&cfg.Worker); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyDaemon(cfg *DaemonSection) error {
	if cfg.Listen == "" {
		return errors.New("daemon.listen is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return errors.New("daemon.listen must be host:port: " + err.Error())
	}
	return nil
}

func verifySentinel(cfg *SentinelSection) error {
	if cfg.Timeout <= 0 {
		return errors.New("sentinel.timeout must be positive")
	}
	return nil
}

func verifyWorker(cfg *WorkerSection) error {
	if cfg.Rate <= 0 {
		return errors.New("worker.rate must be positive")
	}
	if cfg.Burst < 1 {
		return errors.New("worker.burst must be at least 1")
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Enabled && !strings.HasPrefix(cfg.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return errors.New("log.format must be json or text")
	}
	if cfg.File != "" && cfg.FileMaxSizeMB < 1 {
		return errors.New("log.file_max_size_mb must be at least 1 when log.file is set")
	}
	return nil
}
