package sentinel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brn/process-sentinel/internal/telemetry/logger"
	"github.com/brn/process-sentinel/internal/telemetry/metric"
)

// DefaultTimeout is the grace timeout handlers get before the timeout
// guard terminates the process.
const DefaultTimeout = 3 * time.Second

const (
	signalBuffer = 8
	fatalsBuffer = 8
)

const (
	outcomeResolved = "resolved"
	outcomeRejected = "rejected"
	outcomeTimeout  = "timeout"
)

// Sentinel coordinates graceful process termination. It routes
// triggers to registered cleanup handlers, waits for their
// completions under the grace timeout and carries out the final
// terminate-or-continue decision.
//
// All methods are safe for concurrent use.
type Sentinel struct {
	mu       sync.Mutex
	reg      *registry
	fired    map[TriggerName]*Occasion
	firedSeq []TriggerName

	timeout atomic.Int64

	log      *slog.Logger
	exit     func(int)
	exitOnce sync.Once

	fatals chan error

	sigCh  chan os.Signal
	stopCh chan struct{}
}

// Option configures a Sentinel.
type Option func(*Sentinel)

// WithTimeout sets the grace timeout handlers get before the timeout
// guard terminates the process. The default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Sentinel) {
		if d > 0 {
			s.timeout.Store(int64(d))
		}
	}
}

// WithLogger routes the sentinel's log lines through log instead of
// slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sentinel) {
		if log != nil {
			s.log = log
		}
	}
}

// WithExitFunc replaces os.Exit as the final termination primitive.
// Tests use it to observe exit codes in-process.
func WithExitFunc(exit func(int)) Option {
	return func(s *Sentinel) {
		if exit != nil {
			s.exit = exit
		}
	}
}

// New returns a Sentinel with no observers and signal interception
// not yet installed. Most programs use the package-level functions
// against the default instance instead.
func New(opts ...Option) *Sentinel {
	s := &Sentinel{
		reg:    newRegistry(),
		fired:  make(map[TriggerName]*Occasion),
		log:    slog.Default(),
		exit:   os.Exit,
		fatals: make(chan error, fatalsBuffer),
	}
	s.timeout.Store(int64(DefaultTimeout))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers h for occasions of the named trigger and returns
// the handle to cancel it with. If the trigger already fired, h is
// not registered; it is invoked once immediately with a synthetic
// late event (see Event.Late). Observing TriggerAny is equivalent to
// ObserveAny.
func (s *Sentinel) Observe(name TriggerName, h Handler, opts ...ObserveOption) *Registration {
	if h == nil {
		panic("sentinel: Observe with nil handler")
	}
	r := &Registration{trigger: name, handler: h, stack: debug.Stack()}
	for _, opt := range opts {
		opt(r)
	}

	s.mu.Lock()
	lateTrigger, late := s.alreadyFiredLocked(name)
	if late {
		s.mu.Unlock()
		s.invokeLate(r, lateTrigger)
		return r
	}
	s.reg.add(r)
	s.mu.Unlock()

	s.log.Debug("observer registered", "trigger", name, "handler", r.logName())
	return r
}

// ObserveAny registers h against the wildcard trigger: it runs once,
// for whichever trigger fires first. If any trigger already fired, h
// is invoked immediately for that first one instead of being
// registered.
func (s *Sentinel) ObserveAny(h Handler, opts ...ObserveOption) *Registration {
	return s.Observe(TriggerAny, h, opts...)
}

// Unobserve cancels a registration. A handler already in flight is
// not interrupted, but its pending completion is abandoned so the
// occasion stops waiting for it, and its timeout guard is disarmed.
// Unobserve of a nil or already-removed registration is a no-op.
func (s *Sentinel) Unobserve(r *Registration) {
	if r == nil {
		return
	}
	s.mu.Lock()
	removed := s.reg.remove(r)
	s.mu.Unlock()

	if removed {
		s.log.Debug("observer removed", "trigger", r.trigger, "handler", r.logName())
	}
	comp, g := r.inflight()
	g.disarm()
	if comp != nil && comp.abandon() {
		s.log.Debug("pending completion abandoned",
			"trigger", comp.event.Trigger(),
			"handler", r.logName(),
			"occasion_id", comp.event.ID())
	}
}

// alreadyFiredLocked resolves whether a registration for name would
// be late, and for the wildcard which fired trigger it should see.
func (s *Sentinel) alreadyFiredLocked(name TriggerName) (TriggerName, bool) {
	if name == TriggerAny {
		if len(s.firedSeq) > 0 {
			return s.firedSeq[0], true
		}
		return "", false
	}
	if _, ok := s.fired[name]; ok {
		return name, true
	}
	return "", false
}

// invokeLate runs a handler that was registered after its trigger
// fired. The late path has no guard and no aggregation: the
// termination decision was already made.
func (s *Sentinel) invokeLate(r *Registration, trigger TriggerName) {
	r.fired.Store(true)
	ev := newLateEvent(trigger)
	comp := newCompletion(ev, r, nil)
	r.attach(comp, nil)

	s.log.Debug("trigger already fired, invoking observer immediately",
		"trigger", trigger, "handler", r.logName(), "occasion_id", ev.ID())
	go func() {
		ctx := logger.WithOccasionID(context.Background(), ev.ID())
		metric.Global().RecordHandlerInvoked(string(trigger))
		if err := s.runHandler(ctx, r, ev); err != nil {
			if comp.reject(err) {
				s.log.Warn("late cleanup handler failed",
					"trigger", trigger, "handler", r.logName(),
					"occasion_id", ev.ID(), "error", err)
				metric.Global().RecordHandlerFailure(string(trigger))
			}
			return
		}
		comp.resolve()
	}()
}

type emitOpts struct {
	prevent bool
	code    int
	codeSet bool
	cause   error
}

// EmitOption adjusts a single Emit call.
type EmitOption func(*emitOpts)

// PreventDefault fires the occasion already vetoed. Handlers still
// run; the process does not terminate.
func PreventDefault() EmitOption {
	return func(o *emitOpts) { o.prevent = true }
}

// WithExitCode sets the exit status used when the occasion resolves.
// A rejected occasion uses it too; without it a rejection exits 1.
func WithExitCode(code int) EmitOption {
	return func(o *emitOpts) { o.code, o.codeSet = code, true }
}

// WithCause attaches the error that made the occasion necessary. It
// is logged when the occasion fires; TriggerFatal occasions carry
// one.
func WithCause(err error) EmitOption {
	return func(o *emitOpts) { o.cause = err }
}

// Emit fires the named trigger. The first Emit for a name creates the
// occasion and invokes every matching handler; later calls return the
// same settled or settling occasion without invoking anything.
func (s *Sentinel) Emit(name TriggerName, opts ...EmitOption) *Occasion {
	var eo emitOpts
	for _, opt := range opts {
		opt(&eo)
	}
	return s.emit(name, eo)
}

func (s *Sentinel) emit(name TriggerName, eo emitOpts) *Occasion {
	s.mu.Lock()
	if occ, ok := s.fired[name]; ok {
		s.mu.Unlock()
		s.log.Debug("trigger already fired, occasion reused",
			"trigger", name, "occasion_id", occ.ID())
		return occ
	}

	id := newOccasionID()
	ev := newEvent(name, id)
	if eo.prevent {
		ev.PreventDefault()
	}
	occ := &Occasion{trigger: name, id: id, event: ev, done: make(chan struct{})}

	d := s.Timeout()
	matched := s.reg.matching(name)
	notify := make(chan *Completion, len(matched))
	regs := make([]*Registration, 0, len(matched))
	comps := make([]*Completion, 0, len(matched))
	guards := make([]*guard, 0, len(matched))
	for _, r := range matched {
		// A registration is invoked at most once; one that already
		// ran for an earlier trigger stays inert.
		if !r.fired.CompareAndSwap(false, true) {
			continue
		}
		comp := newCompletion(ev, r, notify)
		g := s.armGuard(r, comp, d)
		r.attach(comp, g)
		regs = append(regs, r)
		comps = append(comps, comp)
		guards = append(guards, g)
	}
	occ.comps = comps
	s.reg.consume(name)
	s.fired[name] = occ
	s.firedSeq = append(s.firedSeq, name)
	s.mu.Unlock()

	if eo.cause != nil {
		s.log.Error("unrecoverable error, beginning termination",
			"trigger", name, "occasion_id", id, "error", eo.cause)
	}
	s.log.Info("termination occasion fired",
		"trigger", name, "occasion_id", id, "handlers", len(regs))
	metric.Global().RecordOccasion(string(name))

	for i, r := range regs {
		go s.invoke(r, ev, comps[i], guards[i], d)
	}
	go s.settleOccasion(occ, eo, notify)
	return occ
}

// invoke runs one handler in its own goroutine and settles its
// completion from the return value.
func (s *Sentinel) invoke(r *Registration, ev *Event, comp *Completion, g *guard, d time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	ctx = logger.WithOccasionID(ctx, ev.ID())

	metric.Global().RecordHandlerInvoked(string(ev.Trigger()))
	start := time.Now()
	err := s.runHandler(ctx, r, ev)
	elapsed := time.Since(start)
	g.disarm()
	metric.Global().ObserveHandlerDuration(string(ev.Trigger()), elapsed.Seconds())

	if err != nil {
		if comp.reject(err) {
			s.log.Warn("cleanup handler failed",
				"trigger", ev.Trigger(), "handler", r.logName(),
				"occasion_id", ev.ID(), "elapsed", elapsed, "error", err)
			metric.Global().RecordHandlerFailure(string(ev.Trigger()))
		}
		return
	}
	if comp.resolve() {
		s.log.Debug("cleanup handler finished",
			"trigger", ev.Trigger(), "handler", r.logName(),
			"occasion_id", ev.ID(), "elapsed", elapsed)
	}
}

// runHandler runs one handler behind a recover boundary; a panic is
// returned as ErrHandlerPanic.
func (s *Sentinel) runHandler(ctx context.Context, r *Registration, ev *Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("cleanup handler panicked",
				"trigger", ev.Trigger(), "handler", r.logName(),
				"occasion_id", ev.ID(), "panic", p,
				"stack", string(debug.Stack()))
			err = ErrHandlerPanic.WithDetails(fmt.Sprint(p))
		}
	}()
	return r.handler(ctx, ev)
}

// settleOccasion waits for every completion, makes the termination
// decision and carries it out.
func (s *Sentinel) settleOccasion(occ *Occasion, eo emitOpts, notify <-chan *Completion) {
	var (
		firstFailed *Completion
		timedOut    bool
	)
	for range occ.comps {
		c := <-notify
		switch c.State() {
		case StateTimedOut:
			timedOut = true
			if firstFailed == nil {
				firstFailed = c
			}
		case StateRejected:
			if firstFailed == nil {
				firstFailed = c
			}
		}
	}

	var err error
	if firstFailed != nil {
		err = firstFailed.Err()
	}

	switch {
	case timedOut:
		// the guard already terminated; just record the outcome
		occ.err, occ.code = err, 1
	case occ.event.DefaultPrevented():
		occ.vetoed = true
		occ.err = err
		s.log.Debug("termination vetoed",
			"trigger", occ.trigger, "occasion_id", occ.id)
		metric.Global().RecordVeto(string(occ.trigger))
	case err != nil:
		code := 1
		if eo.codeSet {
			code = eo.code
		}
		occ.err, occ.code = err, code
		s.log.Error("cleanup failed, terminating",
			"trigger", occ.trigger, "occasion_id", occ.id,
			"handler", firstFailed.reg.logName(),
			"code", code, "error", err,
			"registered_at", string(firstFailed.reg.stack))
		s.terminate(code, outcomeRejected)
	default:
		code := 0
		if eo.codeSet {
			code = eo.code
		}
		occ.code = code
		s.log.Info("cleanup complete, terminating",
			"trigger", occ.trigger, "occasion_id", occ.id, "code", code)
		s.terminate(code, outcomeResolved)
	}
	close(occ.done)
}

// terminate invokes the exit function. Only the first call for the
// life of the sentinel reaches it; with os.Exit that call does not
// return.
func (s *Sentinel) terminate(code int, outcome string) {
	metric.Global().RecordTermination(outcome)
	s.exitOnce.Do(func() { s.exit(code) })
}

// Exit requests termination with the given status code through the
// exit trigger. It blocks while cleanup handlers run and returns only
// if a handler vetoed the termination.
func (s *Sentinel) Exit(code int) {
	occ := s.emit(TriggerExit, emitOpts{code: code, codeSet: true})
	<-occ.Done()
}

// Fail reports an unrecoverable error and fires the fatal trigger
// with exit status 1. Like Exit it returns only on veto. A nil error
// does nothing.
func (s *Sentinel) Fail(err error) {
	if err == nil {
		return
	}
	occ := s.emit(TriggerFatal, emitOpts{code: 1, codeSet: true, cause: err})
	<-occ.Done()
}

// Fatals returns a channel that feeds Fail. Long-running goroutines
// hand fatal errors to it instead of calling Fail so they do not
// block; the dispatch loop started by Start drains it.
func (s *Sentinel) Fatals() chan<- error { return s.fatals }

// Recover is the top-level panic boundary. Deferred first in main, it
// turns an otherwise uncaught panic into a fatal occasion so cleanup
// handlers still run:
//
//	func main() {
//		defer sentinel.Recover()
//		...
//	}
func (s *Sentinel) Recover() {
	s.trap(recover())
}

func (s *Sentinel) trap(p any) {
	if p == nil {
		return
	}
	err, ok := p.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", p)
	}
	s.log.Error("uncaught panic, treating as fatal",
		"panic", p, "stack", string(debug.Stack()))
	s.Fail(err)
}

// Timeout returns the current grace timeout.
func (s *Sentinel) Timeout() time.Duration {
	return time.Duration(s.timeout.Load())
}

// SetTimeout changes the grace timeout for handlers invoked from now
// on; in-flight guards keep the timeout they were armed with.
// Non-positive durations are ignored.
func (s *Sentinel) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.timeout.Store(int64(d))
	s.log.Debug("grace timeout changed", "timeout", d)
}

// Halting reports whether any trigger has fired.
func (s *Sentinel) Halting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.firedSeq) > 0
}

// Observers returns the number of live registrations, wildcard
// included.
func (s *Sentinel) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.size()
}

// Start installs signal interception and begins draining the fatal
// error channel. It is idempotent; Stop undoes it.
func (s *Sentinel) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sigCh != nil {
		return
	}
	s.sigCh = make(chan os.Signal, signalBuffer)
	s.stopCh = make(chan struct{})
	signal.Notify(s.sigCh, recognizedSignals()...)
	go s.dispatch(s.sigCh, s.stopCh)
	s.log.Debug("signal interception installed", "signals", len(signalTriggers))
}

// Stop removes signal interception and stops the dispatch loop.
// Registered observers stay registered; a later Start resumes.
func (s *Sentinel) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sigCh == nil {
		return
	}
	signal.Stop(s.sigCh)
	close(s.stopCh)
	s.sigCh, s.stopCh = nil, nil
}

func (s *Sentinel) dispatch(sigs <-chan os.Signal, stop <-chan struct{}) {
	for {
		select {
		case sig := <-sigs:
			name, ok := triggerForSignal(sig)
			if !ok {
				continue
			}
			s.log.Info("termination signal received",
				"signal", sig.String(), "trigger", name)
			s.emit(name, emitOpts{})
		case err := <-s.fatals:
			if err == nil {
				continue
			}
			s.emit(TriggerFatal, emitOpts{code: 1, codeSet: true, cause: err})
		case <-stop:
			return
		}
	}
}

func recognizedSignals() []os.Signal {
	sigs := make([]os.Signal, 0, len(signalTriggers))
	for sig := range signalTriggers {
		sigs = append(sigs, sig)
	}
	return sigs
}

func triggerForSignal(sig os.Signal) (TriggerName, bool) {
	name, ok := signalTriggers[sig]
	return name, ok
}
