package sentinel

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Occasion is one firing of a trigger. Emit returns it immediately;
// it settles in the background once every matched handler has settled
// and the termination decision has been carried out.
type Occasion struct {
	trigger TriggerName
	id      string
	event   *Event
	comps   []*Completion

	done   chan struct{}
	err    error
	vetoed bool
	code   int
}

// Trigger returns the fired trigger name.
func (o *Occasion) Trigger() TriggerName { return o.trigger }

// ID returns the occasion identifier carried by every log line the
// occasion produces.
func (o *Occasion) ID() string { return o.id }

// Event returns the event handed to the occasion's handlers.
func (o *Occasion) Event() *Event { return o.event }

// Completions returns the completions of the handlers the occasion
// invoked, in invocation order.
func (o *Occasion) Completions() []*Completion { return o.comps }

// Done is closed when the occasion has settled. An occasion that
// decides to terminate calls the exit function first, so with the
// default exit function only vetoed occasions produce an observable
// close.
func (o *Occasion) Done() <-chan struct{} { return o.done }

// Err returns the error the occasion settled with: nil when every
// handler resolved, otherwise the earliest rejection in settlement
// order. It returns nil until Done is closed.
func (o *Occasion) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return nil
	}
}

// Vetoed reports whether a handler prevented the termination. It
// returns false until Done is closed.
func (o *Occasion) Vetoed() bool {
	select {
	case <-o.done:
		return o.vetoed
	default:
		return false
	}
}

// Code returns the exit status the occasion decided on. It returns
// zero until Done is closed.
func (o *Occasion) Code() int {
	select {
	case <-o.done:
		return o.code
	default:
		return 0
	}
}

// Wait blocks until the occasion settles or ctx is cancelled, and
// returns the occasion error or the context error.
func (o *Occasion) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newOccasionID returns a lowercase ULID with the "ps-" prefix, the
// correlation id stamped on every log line an occasion produces.
func newOccasionID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "ps-unknown"
	}
	return "ps-" + strings.ToLower(id.String())
}
