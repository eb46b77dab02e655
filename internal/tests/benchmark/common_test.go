package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/brn/process-sentinel/pkg/sentinel"
)

// HandlerCounts defines the handler counts for fan-out benchmarks.
var HandlerCounts = []int{1, 10, 100}

// PreloadCounts defines the registry sizes for registration benchmarks.
var PreloadCounts = []int{100, 1000, 10000}

// newSentinel builds a sentinel that neither logs nor exits the
// benchmark binary.
func newSentinel() *sentinel.Sentinel {
	return sentinel.New(
		sentinel.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		sentinel.WithExitFunc(func(int) {}),
	)
}

// nopHandler completes immediately.
func nopHandler(ctx context.Context, ev *sentinel.Event) error {
	return nil
}

// uniqueTrigger returns a distinct trigger per iteration so every Emit
// fires a fresh occasion.
func uniqueTrigger(i int) sentinel.TriggerName {
	return sentinel.TriggerName(fmt.Sprintf("bench-trigger-%d", i))
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}
