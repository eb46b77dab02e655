package daemon

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/brn/process-sentinel/internal/daemon/config"
	"github.com/brn/process-sentinel/internal/infra/buildinfo"
	"github.com/brn/process-sentinel/internal/telemetry/metric"
	"github.com/brn/process-sentinel/pkg/sentinel"
)

// Server is the daemon's HTTP surface: health, status and metrics.
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	snl     *sentinel.Sentinel
	worker  *Worker
	log     *slog.Logger
	started time.Time
}

// NewServer creates the HTTP server for the daemon endpoints.
func NewServer(cfg *config.DaemonConfig, snl *sentinel.Sentinel, worker *Worker, log *slog.Logger) *Server {
	s := &Server{
		snl:     snl,
		worker:  worker,
		log:     log,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /status", s.handleStatus)
	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metric.Handler())
	}

	s.handler = Chain(mux, Recover(log), Instrument())
	s.httpServer = &http.Server{
		Addr:    cfg.Daemon.Listen,
		Handler: s.handler,
	}

	return s
}

// Handler returns the wrapped HTTP handler. Tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleHealthz handles GET /healthz.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus handles GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := "running"
	if s.snl.Halting() {
		status = "halting"
	}

	info := buildinfo.Get()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":        status,
		"version":       info.Version,
		"commit":        info.Commit,
		"go_version":    info.GoVersion,
		"observers":     s.snl.Observers(),
		"grace_timeout": s.snl.Timeout().String(),
		"worker_units":  s.worker.Units(),
		"uptime":        time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
