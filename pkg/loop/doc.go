// Package loop provides the single logical execution context toastkit runs on.
//
// Everything in the transient, delivery and overlay packages assumes one
// cooperative context: a task never runs concurrently with another task, and
// work is suspended only at two points, a deferral ("run after the current
// unit of work") and a timer. The Scheduler interface captures exactly that:
//
//	type Scheduler interface {
//	    Defer(fn func())
//	    AfterFunc(d time.Duration, fn func()) Timer
//	    Now() time.Time
//	}
//
// Two implementations are provided.
//
// Loop owns a goroutine that drains a FIFO task queue. Tasks deferred while a
// batch is running are executed after every task already queued. Timers are
// backed by a github.com/benbjohnson/clock Clock and their callbacks are posted
// back into the queue, so they resume on the loop goroutine. Do is the only
// method that may be called from other goroutines to hop onto the loop.
//
//	l := loop.New(loop.WithLogger(log))
//	go l.Run(ctx)
//	l.Do(func() { model.RaiseInfo("Saved") })
//
// Manual has no goroutines and runs on virtual time. Drain runs queued tasks
// until none are left; Advance moves the virtual clock forward, firing due
// timers in deadline order. It is meant for tests and for hosts that already
// own a frame loop and want to pump toastkit themselves.
//
// # Error Handling
//
// A panicking task is recovered and logged; the loop keeps running. Posting to
// a stopped Loop drops the task and Do reports ErrStopped.
package loop
