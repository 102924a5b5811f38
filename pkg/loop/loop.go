package loop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Loop is a goroutine-backed Scheduler.
// Defer, AfterFunc and Do never block; the queue is unbounded.
type Loop struct {
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	queue   []func()
	running bool
	stopped bool

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

// New creates a loop. Tasks posted before Run are kept and executed once it starts.
func New(opts ...Option) *Loop {
	o := newOptions(opts)
	return &Loop{
		clock:  o.clock,
		logger: o.logger,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run drains the task queue until ctx is cancelled or Stop is called.
// It returns nil after Stop, including a Stop that happened before Run,
// and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = true
	if l.stopped {
		l.mu.Unlock()
		l.closeDone()
		return nil
	}
	l.mu.Unlock()

	defer l.closeDone()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			select {
			case <-ctx.Done():
				l.markStopped()
				return ctx.Err()
			case <-l.stop:
				return nil
			case <-l.wake:
				continue
			}
		}

		for _, fn := range batch {
			select {
			case <-l.stop:
				return nil
			default:
			}
			safeRun(l.logger, fn)
		}
	}
}

// Stop ends Run after the task in progress, if any. Pending tasks are
// discarded. Safe to call more than once, including from a task.
func (l *Loop) Stop() {
	l.markStopped()
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) closeDone() {
	l.doneOnce.Do(func() { close(l.done) })
}

func (l *Loop) markStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.stopped = true
	l.queue = nil
	close(l.stop)
	return true
}

// Do posts fn to the loop from any goroutine.
func (l *Loop) Do(fn func()) error {
	if fn == nil {
		return nil
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Defer schedules fn after the current unit of work.
func (l *Loop) Defer(fn func()) {
	if err := l.Do(fn); err != nil {
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "task dropped",
			logger.Component("loop"),
			logger.Error(err),
		)
	}
}

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = l.clock.AfterFunc(d, func() {
		l.Defer(func() {
			if t.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	return t
}

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *clock.Timer
	state atomic.Int32
}

// Stop also covers the window where the clock already fired but the posted
// callback has not run on the loop yet.
func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
