package sentinel

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handler is a cleanup function run when an observed trigger fires.
//
// The handler owns its completion: returning nil resolves it,
// returning an error rejects it, and a panic is recovered and counted
// as a rejection. The context carries the occasion identifier for
// logging and is cancelled when the grace timeout expires.
type Handler func(ctx context.Context, ev *Event) error

// Registration is the handle returned by Observe and ObserveAny. It
// identifies one registered handler and is the argument to Unobserve.
type Registration struct {
	trigger TriggerName
	label   string
	handler Handler
	stack   []byte

	fired atomic.Bool

	mu   sync.Mutex
	comp *Completion
	grd  *guard
}

// ObserveOption configures a registration.
type ObserveOption func(*Registration)

// Named attaches a diagnostic label to the registration. The label
// shows up in logs and timeout reports; it does not have to be
// unique.
func Named(label string) ObserveOption {
	return func(r *Registration) { r.label = label }
}

// Trigger returns the trigger name the registration observes.
// Wildcard registrations report TriggerAny.
func (r *Registration) Trigger() TriggerName { return r.trigger }

// Name returns the label given with Named, if any.
func (r *Registration) Name() string { return r.label }

// Fired reports whether the handler has been invoked at least once.
func (r *Registration) Fired() bool { return r.fired.Load() }

// Completion returns the completion of the most recent invocation, or
// nil when the handler has not been invoked yet.
func (r *Registration) Completion() *Completion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comp
}

func (r *Registration) attach(c *Completion, g *guard) {
	r.mu.Lock()
	r.comp, r.grd = c, g
	r.mu.Unlock()
}

func (r *Registration) inflight() (*Completion, *guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comp, r.grd
}

func (r *Registration) logName() string {
	if r.label != "" {
		return r.label
	}
	return "anonymous"
}

// registry holds live registrations, bucketed by trigger with a
// separate wildcard bucket. Buckets keep registration order; the
// sentinel's mutex guards all access.
type registry struct {
	specific map[TriggerName][]*Registration
	wildcard []*Registration
}

func newRegistry() *registry {
	return &registry{specific: make(map[TriggerName][]*Registration)}
}

func (rg *registry) add(r *Registration) {
	if r.trigger == TriggerAny {
		rg.wildcard = append(rg.wildcard, r)
		return
	}
	rg.specific[r.trigger] = append(rg.specific[r.trigger], r)
}

// remove drops the registration from its bucket and reports whether
// it was still present.
func (rg *registry) remove(r *Registration) bool {
	if r.trigger == TriggerAny {
		var ok bool
		rg.wildcard, ok = removeReg(rg.wildcard, r)
		return ok
	}
	list, ok := removeReg(rg.specific[r.trigger], r)
	if ok {
		if len(list) == 0 {
			delete(rg.specific, r.trigger)
		} else {
			rg.specific[r.trigger] = list
		}
	}
	return ok
}

// consume drops every bucket the fired trigger matched. The specific
// bucket can never match again and the wildcard registrations were
// just invoked; a spent registration must not linger in the live
// count.
func (rg *registry) consume(name TriggerName) {
	delete(rg.specific, name)
	rg.wildcard = nil
}

func (rg *registry) size() int {
	n := len(rg.wildcard)
	for _, list := range rg.specific {
		n += len(list)
	}
	return n
}

// matching returns the registrations to invoke for name: the specific
// bucket first, then the wildcard bucket, each in registration order.
func (rg *registry) matching(name TriggerName) []*Registration {
	specific := rg.specific[name]
	out := make([]*Registration, 0, len(specific)+len(rg.wildcard))
	out = append(out, specific...)
	out = append(out, rg.wildcard...)
	return out
}

func removeReg(list []*Registration, r *Registration) ([]*Registration, bool) {
	for i, cand := range list {
		if cand == r {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
