package sentinel

import (
	"sync/atomic"
	"time"
)

var defaultSentinel atomic.Pointer[Sentinel]

func init() {
	defaultSentinel.Store(New())
}

// Default returns the process-wide sentinel used by the package-level
// functions.
func Default() *Sentinel {
	return defaultSentinel.Load()
}

// SetDefault replaces the process-wide sentinel. Passing nil is a
// no-op.
func SetDefault(s *Sentinel) {
	if s != nil {
		defaultSentinel.Store(s)
	}
}

// Observe registers h on the default sentinel.
func Observe(name TriggerName, h Handler, opts ...ObserveOption) *Registration {
	return Default().Observe(name, h, opts...)
}

// ObserveAny registers h against the wildcard trigger on the default
// sentinel.
func ObserveAny(h Handler, opts ...ObserveOption) *Registration {
	return Default().ObserveAny(h, opts...)
}

// Unobserve cancels a registration on the default sentinel.
func Unobserve(r *Registration) {
	Default().Unobserve(r)
}

// Emit fires the named trigger on the default sentinel.
func Emit(name TriggerName, opts ...EmitOption) *Occasion {
	return Default().Emit(name, opts...)
}

// Exit requests termination with the given status code through the
// default sentinel.
func Exit(code int) {
	Default().Exit(code)
}

// Fail reports an unrecoverable error to the default sentinel.
func Fail(err error) {
	Default().Fail(err)
}

// Fatals returns the fatal error channel of the default sentinel.
func Fatals() chan<- error {
	return Default().Fatals()
}

// Recover is the package-level panic boundary for the default
// sentinel; defer it first in main.
func Recover() {
	Default().trap(recover())
}

// Timeout returns the grace timeout of the default sentinel.
func Timeout() time.Duration {
	return Default().Timeout()
}

// SetTimeout changes the grace timeout of the default sentinel.
func SetTimeout(d time.Duration) {
	Default().SetTimeout(d)
}

// Halting reports whether any trigger has fired on the default
// sentinel.
func Halting() bool {
	return Default().Halting()
}

// Start installs signal interception on the default sentinel.
func Start() {
	Default().Start()
}

// Stop removes signal interception from the default sentinel.
func Stop() {
	Default().Stop()
}
