package loop

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Timer is a handle to a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler is the cooperative execution context.
// Implementations run every task, including timer callbacks, one at a time.
type Scheduler interface {
	// Defer schedules fn to run after the current unit of work.
	Defer(fn func())
	// AfterFunc schedules fn to run on the scheduler once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now reports the scheduler's notion of the current time.
	Now() time.Time
}

// Option configures Loop and Manual schedulers.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *slog.Logger
	start  time.Time
}

// WithClock sets the clock backing Loop timers. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used to report recovered panics and dropped tasks.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStart sets the initial virtual time of a Manual scheduler.
func WithStart(t time.Time) Option {
	return func(o *options) {
		o.start = t
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:  clock.New(),
		logger: slog.Default(),
		start:  time.Unix(0, 0).UTC(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// safeRun executes fn and logs a panic instead of propagating it.
func safeRun(log *slog.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.LogAttrs(context.Background(), slog.LevelError, "scheduled task panicked",
				logger.Component("loop"),
				logger.Panic(r),
			)
		}
	}()
	fn()
}
