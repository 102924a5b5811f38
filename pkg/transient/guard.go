package transient

import (
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/loop"
)

// Guard gates change signals on a liveness flag.
// The flag starts true and, once Teardown runs, stays false forever.
type Guard struct {
	sched    loop.Scheduler
	alive    atomic.Bool
	teardown loop.Timer
}

// NewGuard returns a live guard bound to s.
func NewGuard(s loop.Scheduler) *Guard {
	g := &Guard{sched: s}
	g.alive.Store(true)
	return g
}

// Alive reports the liveness flag. Safe to call from any goroutine.
func (g *Guard) Alive() bool {
	return g.alive.Load()
}

// NotifySafe defers fn to after the current unit of work if the guard is
// alive. Liveness is checked again when fn is about to run.
func (g *Guard) NotifySafe(fn func()) {
	if fn == nil || !g.alive.Load() {
		return
	}
	g.sched.Defer(func() {
		if g.alive.Load() {
			fn()
		}
	})
}

// Teardown clears the liveness flag. Signals already deferred become no-ops.
func (g *Guard) Teardown() {
	g.alive.Store(false)
	g.CancelTeardown()
}

// TeardownAfter schedules Teardown after d, replacing any earlier schedule.
// A consumer that is hidden for a grace period can use it instead of
// tearing down immediately.
func (g *Guard) TeardownAfter(d time.Duration) {
	if !g.alive.Load() {
		return
	}
	g.CancelTeardown()
	g.teardown = g.sched.AfterFunc(d, g.Teardown)
}

// CancelTeardown cancels a pending TeardownAfter. It reports whether one was pending.
func (g *Guard) CancelTeardown() bool {
	if g.teardown == nil {
		return false
	}
	t := g.teardown
	g.teardown = nil
	return t.Stop()
}
