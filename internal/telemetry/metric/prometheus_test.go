// Package metric provides Prometheus metrics for process-sentinel.
package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.Occasions == nil {
		t.Error("Occasions is nil")
	}
	if r.HandlersInvoked == nil {
		t.Error("HandlersInvoked is nil")
	}
	if r.HandlerDuration == nil {
		t.Error("HandlerDuration is nil")
	}
	if r.Terminations == nil {
		t.Error("Terminations is nil")
	}
	if r.RequestsTotal == nil {
		t.Error("RequestsTotal is nil")
	}
}

func TestGlobal(t *testing.T) {
	r1 := Global()
	r2 := Global()
	if r1 != r2 {
		t.Error("Global() should return the same instance")
	}
}

func TestHandler(t *testing.T) {
	h := Handler()
	if h == nil {
		t.Fatal("Handler() returned nil")
	}

	bodyStr := scrape(t, h)

	// Check for Go runtime metrics (from GoCollector)
	if !strings.Contains(bodyStr, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}

	// Check for process metrics (from ProcessCollector)
	if !strings.Contains(bodyStr, "process_") {
		t.Error("expected process metrics")
	}
}

func TestTerminationMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordOccasion("interrupt")
	r.RecordHandlerInvoked("interrupt")
	r.RecordHandlerInvoked("interrupt")
	r.RecordHandlerFailure("interrupt")
	r.RecordHandlerTimeout("terminate")
	r.RecordVeto("exit")
	r.RecordTermination("resolved")
	r.ObserveHandlerDuration("interrupt", 0.25)

	bodyStr := scrape(t, r.Handler())

	if !strings.Contains(bodyStr, `sentinel_occasions_total{trigger="interrupt"} 1`) {
		t.Error("expected sentinel_occasions_total{trigger=\"interrupt\"} 1")
	}
	if !strings.Contains(bodyStr, `sentinel_handlers_invoked_total{trigger="interrupt"} 2`) {
		t.Error("expected sentinel_handlers_invoked_total{trigger=\"interrupt\"} 2")
	}
	if !strings.Contains(bodyStr, `sentinel_handler_failures_total{trigger="interrupt"} 1`) {
		t.Error("expected sentinel_handler_failures_total{trigger=\"interrupt\"} 1")
	}
	if !strings.Contains(bodyStr, `sentinel_handler_timeouts_total{trigger="terminate"} 1`) {
		t.Error("expected sentinel_handler_timeouts_total{trigger=\"terminate\"} 1")
	}
	if !strings.Contains(bodyStr, `sentinel_vetoes_total{trigger="exit"} 1`) {
		t.Error("expected sentinel_vetoes_total{trigger=\"exit\"} 1")
	}
	if !strings.Contains(bodyStr, `sentinel_terminations_total{outcome="resolved"} 1`) {
		t.Error("expected sentinel_terminations_total{outcome=\"resolved\"} 1")
	}
	if !strings.Contains(bodyStr, "sentinel_handler_duration_seconds_bucket") {
		t.Error("expected sentinel_handler_duration_seconds_bucket")
	}
	if !strings.Contains(bodyStr, "sentinel_halting 1") {
		t.Error("expected sentinel_halting 1 after an occasion fired")
	}
}

func TestRequestMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordRequest("GET", "/healthz", "200")
	r.RecordRequest("GET", "/status", "200")
	r.RecordRequest("GET", "/status", "200")

	r.ObserveRequestDuration("GET", "/healthz", 0.002)
	r.ObserveRequestDuration("GET", "/status", 0.004)

	bodyStr := scrape(t, r.Handler())

	if !strings.Contains(bodyStr, `sentinel_requests_total{method="GET",path="/healthz",status="200"} 1`) {
		t.Error("expected sentinel_requests_total for GET /healthz 200")
	}
	if !strings.Contains(bodyStr, `sentinel_requests_total{method="GET",path="/status",status="200"} 2`) {
		t.Error("expected sentinel_requests_total for GET /status 200")
	}
	if !strings.Contains(bodyStr, "sentinel_request_duration_seconds_count") {
		t.Error("expected sentinel_request_duration_seconds_count")
	}
	if !strings.Contains(bodyStr, "sentinel_request_duration_seconds_bucket") {
		t.Error("expected sentinel_request_duration_seconds_bucket")
	}
}

func TestWorkerMetrics(t *testing.T) {
	r := NewRegistry()

	r.IncWorkerUnits()
	r.IncWorkerUnits()
	r.IncWorkerUnits()

	bodyStr := scrape(t, r.Handler())

	if !strings.Contains(bodyStr, "sentinel_worker_units_total 3") {
		t.Error("expected sentinel_worker_units_total 3")
	}
}

func TestRegistryHandler(t *testing.T) {
	r := NewRegistry()
	h := r.Handler()
	if h == nil {
		t.Fatal("Handler() returned nil")
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	// Simulate concurrent metric updates
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordOccasion("interrupt")
				r.RecordHandlerInvoked("interrupt")
				r.ObserveHandlerDuration("interrupt", 0.001)
				r.RecordRequest("GET", "/healthz", "200")
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	bodyStr := scrape(t, r.Handler())

	if !strings.Contains(bodyStr, `sentinel_occasions_total{trigger="interrupt"} 1000`) {
		t.Error("expected sentinel_occasions_total{trigger=\"interrupt\"} 1000")
	}
	if !strings.Contains(bodyStr, `sentinel_requests_total{method="GET",path="/healthz",status="200"} 1000`) {
		t.Error("expected sentinel_requests_total 1000")
	}
}
