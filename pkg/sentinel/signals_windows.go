//go:build windows

package sentinel

import "os"

// signalTriggers maps the signals the sentinel intercepts to the
// trigger names they fire. Windows only delivers an interrupt
// equivalent (Ctrl-C, Ctrl-Break).
var signalTriggers = map[os.Signal]TriggerName{
	os.Interrupt: TriggerInterrupt,
}
