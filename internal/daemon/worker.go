package daemon

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/brn/process-sentinel/internal/telemetry/metric"
)

// Worker is the daemon's background workload. It processes work units
// at a configured rate and exists so the daemon has real in-flight
// work for cleanup handlers to drain during termination.
type Worker struct {
	limiter *rate.Limiter
	log     *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	units  atomic.Uint64
}

// NewWorker creates a worker processing r units per second with the
// given burst size.
func NewWorker(r float64, burst int, log *slog.Logger) *Worker {
	return &Worker{
		limiter: rate.NewLimiter(rate.Limit(r), burst),
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start launches the work loop.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go w.loop(ctx)
	w.log.Debug("worker started", "rate", float64(w.limiter.Limit()), "burst", w.limiter.Burst())
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	for {
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		w.units.Add(1)
		metric.Global().IncWorkerUnits()
	}
}

// Stop drains the work loop. It returns once the loop has exited or
// the context is done.
func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()

	select {
	case <-w.done:
		w.log.Debug("worker stopped", "units", w.units.Load())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Units returns the number of work units processed so far.
func (w *Worker) Units() uint64 {
	return w.units.Load()
}
