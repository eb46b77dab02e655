package daemon

import (
	"context"
	"errors"
	"net/http"

	"github.com/brn/process-sentinel/internal/daemon/config"
	"github.com/brn/process-sentinel/internal/infra/buildinfo"
	"github.com/brn/process-sentinel/internal/infra/confloader"
	"github.com/brn/process-sentinel/internal/telemetry/logger"
	"github.com/brn/process-sentinel/internal/telemetry/metric"
	"github.com/brn/process-sentinel/pkg/sentinel"
)

// Daemon wires the sentinel, the HTTP surface, the worker and config
// reloading into one process.
type Daemon struct {
	cfg        *config.DaemonConfig
	configPath string
	log        logger.Logger

	snl     *sentinel.Sentinel
	server  *Server
	worker  *Worker
	watcher *confloader.Watcher
}

// Option configures the Daemon.
type Option func(*Daemon)

// WithSentinel injects a prebuilt sentinel. Tests use it to observe
// exit codes in-process.
func WithSentinel(s *sentinel.Sentinel) Option {
	return func(d *Daemon) { d.snl = s }
}

// WithConfigPath enables live reload of the given configuration file.
func WithConfigPath(path string) Option {
	return func(d *Daemon) { d.configPath = path }
}

// New assembles a daemon from the configuration.
func New(cfg *config.DaemonConfig, log logger.Logger, opts ...Option) *Daemon {
	d := &Daemon{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(d)
	}

	if d.snl == nil {
		d.snl = sentinel.New(
			sentinel.WithTimeout(cfg.Sentinel.Timeout),
			sentinel.WithLogger(log.Slog()),
		)
	}
	d.worker = NewWorker(cfg.Worker.Rate, cfg.Worker.Burst, log.Slog())
	d.server = NewServer(cfg, d.snl, d.worker, log.Slog())

	return d
}

// Sentinel returns the daemon's termination coordinator.
func (d *Daemon) Sentinel() *sentinel.Sentinel {
	return d.snl
}

// Server returns the daemon's HTTP server.
func (d *Daemon) Server() *Server {
	return d.server
}

// Run starts every component and blocks until the context is
// cancelled. Signal-initiated termination ends the process from
// inside the sentinel, so in production Run does not return.
func (d *Daemon) Run(ctx context.Context) error {
	sentinel.SetDefault(d.snl)
	d.snl.Start()
	defer d.snl.Stop()

	d.registerCleanup()

	if err := metric.Global().Register(metric.NewCollector(
		"sentinel_observers",
		"Number of live cleanup handler registrations.",
		func() float64 { return float64(d.snl.Observers()) },
	)); err != nil {
		d.log.Warn("observer gauge registration failed", "error", err)
	}

	d.worker.Start()

	go func() {
		d.log.Info("http server listening", "addr", d.cfg.Daemon.Listen)
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.snl.Fatals() <- err
		}
	}()

	if d.configPath != "" {
		if err := d.startWatcher(); err != nil {
			d.log.Warn("config watcher unavailable", "path", d.configPath, "error", err)
		} else {
			defer d.watcher.Stop()
		}
	}

	d.log.Info("daemon started",
		"version", buildinfo.Version,
		"listen", d.cfg.Daemon.Listen,
		"grace_timeout", d.cfg.Sentinel.Timeout)

	<-ctx.Done()
	d.log.Info("context cancelled, requesting shutdown")
	d.snl.Exit(0)
	return nil
}

// registerCleanup registers the daemon's cleanup handlers. They run
// for whichever termination trigger fires first.
func (d *Daemon) registerCleanup() {
	d.snl.ObserveAny(func(ctx context.Context, ev *sentinel.Event) error {
		d.log.Info("shutting down http server", "trigger", ev.Trigger())
		return d.server.Shutdown(ctx)
	}, sentinel.Named("http-server"))

	d.snl.ObserveAny(func(ctx context.Context, ev *sentinel.Event) error {
		d.log.Info("draining worker", "trigger", ev.Trigger())
		return d.worker.Stop(ctx)
	}, sentinel.Named("worker"))
}

func (d *Daemon) startWatcher() error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(d.log.Slog()))
	if err != nil {
		return err
	}
	if err := w.Watch(d.configPath); err != nil {
		w.Stop()
		return err
	}

	w.OnChange(func(path string) { d.reload(path) })
	w.StartAsync()
	d.watcher = w
	return nil
}

// reload re-reads the configuration file and applies the live-tunable
// settings: grace timeout and log level.
func (d *Daemon) reload(path string) {
	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		d.log.Warn("config reload failed", "path", path, "error", err)
		return
	}
	if err := config.Verify(cfg); err != nil {
		d.log.Warn("config reload rejected", "path", path, "error", err)
		return
	}

	d.snl.SetTimeout(cfg.Sentinel.Timeout)
	logger.SetLevel(cfg.Log.Level)
	d.log.Info("configuration reloaded",
		"grace_timeout", cfg.Sentinel.Timeout,
		"log_level", cfg.Log.Level)
}
