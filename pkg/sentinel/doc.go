// Package sentinel coordinates graceful process termination.
//
// A Sentinel owns the decision to end the process. Components register
// cleanup handlers for the termination triggers they care about
// (signals, explicit exit requests, fatal errors); when a trigger
// fires, every matching handler runs concurrently under a grace
// timeout, and the process exits once all of them have settled. A
// handler can veto the termination by calling PreventDefault on its
// event. A handler that exceeds the grace timeout takes the process
// down with exit status 1 regardless of any veto.
//
// Most programs use the package-level functions, which delegate to a
// process-wide default instance:
//
//	func main() {
//		defer sentinel.Recover()
//		sentinel.Start()
//
//		db := openDatabase()
//		sentinel.ObserveAny(func(ctx context.Context, ev *sentinel.Event) error {
//			return db.Close()
//		}, sentinel.Named("database"))
//
//		serve()
//		sentinel.Exit(0)
//	}
//
// Each trigger fires at most once. Firing a trigger that already fired
// returns the original occasion without invoking anything, and
// registering an observer for it invokes the handler once immediately
// with a synthetic late event.
//
// @req RQ-0101
// @design DS-0101
package sentinel
