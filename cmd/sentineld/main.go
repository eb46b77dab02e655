// Package main provides the entry point for sentineld.
//
// sentineld is the demonstration daemon for the process termination
// sentinel: it intercepts signals, runs guarded cleanup handlers and
// serves health, status and metrics endpoints.
//
// @design DS-0501
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/brn/process-sentinel/internal/daemon"
	"github.com/brn/process-sentinel/internal/daemon/config"
	"github.com/brn/process-sentinel/internal/infra/buildinfo"
	"github.com/brn/process-sentinel/internal/infra/confloader"
	"github.com/brn/process-sentinel/internal/telemetry/logger"
	"github.com/brn/process-sentinel/pkg/sentinel"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newApp creates the CLI application.
func newApp() *cli.App {
	return &cli.App{
		Name:    "sentineld",
		Usage:   "process termination sentinel daemon",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"SENTINEL_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "HTTP bind address for health and metrics endpoints",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: json, text",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log to a rotated file in addition to stderr",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "Cleanup grace timeout",
			},
		},
		Action: runDaemon,
	}
}

func runDaemon(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closer, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	log.Info("starting sentineld",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", c.String("config"))

	opts := []daemon.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, daemon.WithConfigPath(path))
	}
	d := daemon.New(cfg, log, opts...)

	// A panic anywhere below becomes a fatal trigger so cleanup
	// handlers still run.
	defer sentinel.Recover()

	return d.Run(context.Background())
}

// loadConfig loads configuration from file, environment and flags.
func loadConfig(c *cli.Context) (*config.DaemonConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Flags override file and environment
	overrides := map[string]any{}
	if c.IsSet("listen") {
		overrides["daemon.listen"] = c.String("listen")
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		overrides["log.format"] = c.String("log-format")
	}
	if c.IsSet("log-file") {
		overrides["log.file"] = c.String("log-file")
	}
	if c.IsSet("timeout") {
		overrides["sentinel.timeout"] = c.Duration("timeout").String()
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.DaemonConfig) (logger.Logger, io.Closer, error) {
	log, closer, err := logger.New(logger.Config{
		Level:         cfg.Log.Level,
		Format:        cfg.Log.Format,
		File:          cfg.Log.File,
		FileMaxSizeMB: cfg.Log.FileMaxSizeMB,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.SetDefault(log)
	return log, closer, nil
}
