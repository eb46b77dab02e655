package sentinel

import "sync/atomic"

// CompletionState is the lifecycle state of a Completion.
type CompletionState int32

const (
	// StatePending means the handler is still running.
	StatePending CompletionState = iota

	// StateResolved means the handler returned nil, or the completion
	// was abandoned by Unobserve before the handler finished.
	StateResolved

	// StateRejected means the handler returned an error or panicked.
	StateRejected

	// StateTimedOut means the grace timeout expired before the
	// handler settled.
	StateTimedOut
)

// String returns the lowercase name of the state.
func (s CompletionState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	case StateTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Completion tracks one handler invocation for one occasion. It
// settles exactly once; any later attempt to settle it is a no-op.
type Completion struct {
	event *Event
	reg   *Registration

	state     atomic.Int32
	err       error
	abandoned bool
	done      chan struct{}
	notify    chan<- *Completion
}

func newCompletion(ev *Event, reg *Registration, notify chan<- *Completion) *Completion {
	return &Completion{event: ev, reg: reg, done: make(chan struct{}), notify: notify}
}

// State returns the current state. It may be read at any time.
func (c *Completion) State() CompletionState {
	return CompletionState(c.state.Load())
}

// Settled reports whether the completion has left the pending state.
func (c *Completion) Settled() bool { return c.State() != StatePending }

// Done is closed when the completion settles.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Err returns the settlement error: nil while pending or resolved,
// non-nil for rejected and timed-out completions.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Event returns the event the handler was invoked with.
func (c *Completion) Event() *Event { return c.event }

// Abandoned reports whether the completion was settled by Unobserve
// rather than by its handler.
func (c *Completion) Abandoned() bool {
	select {
	case <-c.done:
		return c.abandoned
	default:
		return false
	}
}

// settle moves the completion out of pending and reports whether this
// call won the transition. The error is published before done closes,
// so readers gated on Done see it.
func (c *Completion) settle(state CompletionState, err error, abandoned bool) bool {
	if !c.state.CompareAndSwap(int32(StatePending), int32(state)) {
		return false
	}
	c.err = err
	c.abandoned = abandoned
	close(c.done)
	if c.notify != nil {
		c.notify <- c
	}
	return true
}

func (c *Completion) resolve() bool         { return c.settle(StateResolved, nil, false) }
func (c *Completion) reject(err error) bool { return c.settle(StateRejected, err, false) }
func (c *Completion) abandon() bool         { return c.settle(StateResolved, nil, true) }
func (c *Completion) expire(err error) bool { return c.settle(StateTimedOut, err, false) }
