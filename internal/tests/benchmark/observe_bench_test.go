package benchmark

import (
	"fmt"
	"testing"

	"github.com/brn/process-sentinel/pkg/sentinel"
)

// BenchmarkObserve benchmarks handler registration with a growing
// registry.
func BenchmarkObserve(b *testing.B) {
	s := newSentinel()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s.Observe(sentinel.TriggerInterrupt, nopHandler)
	}

	b.StopTimer()
	reportMemory(b, "mem")
}

// BenchmarkObserveUnobserve benchmarks register and remove in steady
// state.
func BenchmarkObserveUnobserve(b *testing.B) {
	s := newSentinel()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		reg := s.Observe(sentinel.TriggerInterrupt, nopHandler)
		s.Unobserve(reg)
	}
}

// BenchmarkObserve_Preloaded benchmarks register and remove against
// registries of various sizes.
func BenchmarkObserve_Preloaded(b *testing.B) {
	for _, count := range PreloadCounts {
		b.Run(fmt.Sprintf("observers_%d", count), func(b *testing.B) {
			s := newSentinel()
			for i := 0; i < count; i++ {
				s.Observe(sentinel.TriggerInterrupt, nopHandler)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				reg := s.Observe(sentinel.TriggerInterrupt, nopHandler)
				s.Unobserve(reg)
			}
		})
	}
}

// BenchmarkHalting benchmarks the read path used by status endpoints.
func BenchmarkHalting(b *testing.B) {
	s := newSentinel()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if s.Halting() {
			b.Fatal("sentinel should not be halting")
		}
	}
}
