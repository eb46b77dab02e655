package sentinel

// TriggerName identifies a termination occasion.
//
// A small set of names is predeclared for the occasions the sentinel
// raises itself. Applications may observe and fire arbitrary names; a
// name carries no behavior beyond routing observers.
type TriggerName string

const (
	// TriggerExit fires when termination is requested programmatically
	// through Exit.
	TriggerExit TriggerName = "exit"

	// TriggerInterrupt fires on SIGINT (Ctrl-C).
	TriggerInterrupt TriggerName = "interrupt"

	// TriggerAbort fires on SIGABRT.
	TriggerAbort TriggerName = "abort"

	// TriggerTerminate fires on SIGTERM.
	TriggerTerminate TriggerName = "terminate"

	// TriggerQuit fires on SIGQUIT.
	TriggerQuit TriggerName = "quit"

	// TriggerHangup fires on SIGHUP.
	TriggerHangup TriggerName = "hangup"

	// TriggerFatal fires when an unrecoverable error reaches the
	// sentinel through Fail, Recover or the Fatals channel.
	TriggerFatal TriggerName = "fatal"

	// TriggerAny is the wildcard name. Observers registered for it
	// match whichever trigger fires first, regardless of name.
	TriggerAny TriggerName = "any"
)
