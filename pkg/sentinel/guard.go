package sentinel

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/brn/process-sentinel/internal/telemetry/metric"
)

// guard is the per-invocation timeout watchdog. It fires once unless
// disarmed by the handler settling first.
type guard struct {
	timer *time.Timer
}

func (s *Sentinel) armGuard(reg *Registration, comp *Completion, d time.Duration) *guard {
	g := &guard{}
	g.timer = time.AfterFunc(d, func() { s.guardExpired(reg, comp, d) })
	return g
}

func (g *guard) disarm() {
	if g != nil {
		g.timer.Stop()
	}
}

// guardExpired settles the completion as timed out, reports both the
// registration-time and the current stack, and terminates with exit
// status 1. A veto does not stop it.
func (s *Sentinel) guardExpired(reg *Registration, comp *Completion, d time.Duration) {
	err := ErrHandlerTimeout.WithDetails(fmt.Sprintf("%s after %s", reg.logName(), d))
	if !comp.expire(err) {
		return
	}
	ev := comp.event
	s.log.Error("cleanup handler timed out, terminating",
		"trigger", ev.Trigger(),
		"handler", reg.logName(),
		"occasion_id", ev.ID(),
		"timeout", d,
		"registered_at", string(reg.stack),
		"stack", string(debug.Stack()),
	)
	metric.Global().RecordHandlerTimeout(string(ev.Trigger()))
	s.terminate(1, outcomeTimeout)
}
