// Package transient holds one-shot UI state: an error message, an info message
// and a typed notification payload, each of which is set by a raise and
// consumed by exactly one delivery.
//
// A Model owns three optional slots. Raising a slot stores the value in place
// (last write wins) and fires the change signal; clearing a slot is silent, so
// consuming an event is never itself observed as a new event.
//
//	m := transient.New[Toast](sched)
//	unsubscribe := m.OnChange(func() { sel.Signal() })
//	m.RaiseError(err)          // any value, coerced to a display string
//	m.RaiseInfo("Saved")
//	m.RaiseNotification(Toast{Title: "Build finished"})
//
// # Lifecycle guard
//
// Change signals go through an embedded Guard. The signal is never delivered
// synchronously: NotifySafe defers it to after the current unit of work and
// re-checks liveness when it runs. After Teardown, no queued or future signal
// reaches a listener, so a consumer that is being destroyed cannot be revived
// by a raise issued from its own teardown path.
//
// # Concurrency
//
// A Model is bound to one loop.Scheduler and must only be used from that
// scheduler's context. Only the liveness flag is safe to read elsewhere.
package transient
