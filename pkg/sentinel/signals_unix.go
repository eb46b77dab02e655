//go:build !windows

package sentinel

import (
	"os"
	"syscall"
)

// signalTriggers maps the signals the sentinel intercepts to the
// trigger names they fire.
var signalTriggers = map[os.Signal]TriggerName{
	syscall.SIGINT:  TriggerInterrupt,
	syscall.SIGABRT: TriggerAbort,
	syscall.SIGTERM: TriggerTerminate,
	syscall.SIGQUIT: TriggerQuit,
	syscall.SIGHUP:  TriggerHangup,
}
