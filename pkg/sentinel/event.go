package sentinel

import "sync/atomic"

// Event is handed to every cleanup handler when an occasion fires.
//
// Handlers may call PreventDefault to veto the pending termination.
// Events synthesized for late observers (registered after their
// trigger already fired) are inert: the termination decision has
// already been made, so PreventDefault does nothing on them.
type Event struct {
	trigger   TriggerName
	id        string
	late      bool
	prevented atomic.Bool
}

func newEvent(trigger TriggerName, id string) *Event {
	return &Event{trigger: trigger, id: id}
}

func newLateEvent(trigger TriggerName) *Event {
	return &Event{trigger: trigger, id: newOccasionID(), late: true}
}

// Trigger returns the name of the occasion that produced the event.
func (e *Event) Trigger() TriggerName { return e.trigger }

// ID returns the occasion identifier, used to correlate log lines.
func (e *Event) ID() string { return e.id }

// Late reports whether the event was synthesized for a late observer.
func (e *Event) Late() bool { return e.late }

// PreventDefault vetoes the termination this event announces: once
// every handler of the occasion has settled, the process keeps
// running. Calling it on a late event does nothing.
func (e *Event) PreventDefault() {
	if !e.late {
		e.prevented.Store(true)
	}
}

// DefaultPrevented reports whether any handler vetoed the termination.
func (e *Event) DefaultPrevented() bool { return e.prevented.Load() }
