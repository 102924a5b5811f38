package overlay

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/loop"
	"github.com/dmitrymomot/toastkit/pkg/statemachine"
)

type event uint8

const (
	evShow event = iota
	evEntered
	evDismiss
	evExited
	evReset
)

func (e event) String() string {
	return [...]string{"show", "entered", "dismiss", "exited", "reset"}[e]
}

// Slot holds at most one overlay entry.
type Slot[V any] struct {
	sched    loop.Scheduler
	cfg      Config
	surface  Surface[V]
	easing   Easing
	template func(V) Entry[V]
	logger   *slog.Logger

	fsm     *statemachine.Machine[State, event]
	entry   *Entry[V]
	tween   *tween
	dismiss loop.Timer
	reason  CloseReason
}

type tween struct {
	from, to float64
	start    time.Time
	duration time.Duration
	timer    loop.Timer
	done     func()
}

// NewSlot creates an empty slot driven by sched.
func NewSlot[V any](sched loop.Scheduler, opts ...Option[V]) *Slot[V] {
	s := &Slot[V]{
		sched:    sched,
		cfg:      DefaultConfig(),
		easing:   Linear,
		template: func(v V) Entry[V] { return Entry[V]{Value: v} },
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	active := []State{StateEntering, StateVisible, StateExiting}
	s.fsm = statemachine.MustNew(StateEmpty,
		statemachine.WithTransition[State, event](StateEmpty, StateEntering, evShow),
		statemachine.WithTransition[State, event](StateEntering, StateVisible, evEntered),
		statemachine.WithFanIn[State, event]([]State{StateEntering, StateVisible}, StateExiting, evDismiss),
		statemachine.WithTransition[State, event](StateExiting, StateEmpty, evExited),
		statemachine.WithFanIn[State, event](active, StateEmpty, evReset),
		statemachine.WithListener[State, event](s.logTransition),
	)
	return s
}

// State returns the current phase.
func (s *Slot[V]) State() State {
	return s.fsm.Current()
}

// Current returns a copy of the occupying entry with its current progress.
func (s *Slot[V]) Current() (Entry[V], bool) {
	if s.entry == nil {
		return Entry[V]{}, false
	}
	return *s.entry, true
}

// Show replaces whatever occupies the slot with entry and starts its enter
// animation. A zero ID is filled with a new UUID. The entry as stored is
// returned.
func (s *Slot[V]) Show(entry Entry[V]) Entry[V] {
	// OnClosed of the replaced entry may itself show another one.
	for s.State() != StateEmpty {
		s.forceClose(ReasonReplaced)
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.Progress = 0
	s.entry = &entry
	if !s.fire(evShow) {
		s.entry = nil
		return entry
	}

	s.hook("mount", func() {
		if s.surface != nil {
			s.surface.Mount(entry)
		}
	})
	s.animate(1, s.entered)
	return entry
}

// ShowNotification shows payload using the slot's template. It lets a Slot
// serve as the notification hook of a delivery presenter.
func (s *Slot[V]) ShowNotification(_ context.Context, payload V) {
	e := s.template(payload)
	e.Value = payload
	s.Show(e)
}

// Dismiss starts the exit animation. While entering, the exit starts from
// the current progress. It reports false when the slot is empty or already
// exiting.
func (s *Slot[V]) Dismiss() bool {
	return s.beginExit(ReasonDismissed)
}

// Tap invokes the entry's OnTap hook and then dismisses it. Taps on an
// exiting or empty slot are ignored.
func (s *Slot[V]) Tap() bool {
	if !s.canExit() {
		return false
	}
	e := s.entry
	if e.OnTap != nil {
		s.hook("tap", func() { e.OnTap(e.Value) })
	}
	// OnTap may have shown a replacement or dismissed the entry already.
	if s.entry == e {
		s.beginExit(ReasonTapped)
	}
	return true
}

// Close removes the entry immediately without animating, as on teardown.
func (s *Slot[V]) Close() {
	if s.State() != StateEmpty {
		s.forceClose(ReasonClosed)
	}
}

func (s *Slot[V]) canExit() bool {
	return s.entry != nil && s.fsm.CanFire(context.Background(), evDismiss, nil)
}

func (s *Slot[V]) entered() {
	if !s.fire(evEntered) {
		return
	}
	if s.cfg.DismissAfter <= 0 {
		return
	}
	e := s.entry
	s.dismiss = s.sched.AfterFunc(s.cfg.DismissAfter, func() {
		if s.entry == e {
			s.dismiss = nil
			s.beginExit(ReasonTimeout)
		}
	})
}

func (s *Slot[V]) beginExit(reason CloseReason) bool {
	if !s.canExit() {
		return false
	}
	s.stopTimers()
	s.reason = reason
	if !s.fire(evDismiss) {
		return false
	}
	s.animate(0, s.exited)
	return true
}

func (s *Slot[V]) exited() {
	if s.fire(evExited) {
		s.finish(s.reason)
	}
}

func (s *Slot[V]) forceClose(reason CloseReason) {
	s.stopTimers()
	if s.fire(evReset) {
		s.finish(reason)
	}
}

// finish detaches the entry and runs its close hooks.
func (s *Slot[V]) finish(reason CloseReason) {
	e := s.entry
	s.entry = nil
	if e == nil {
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "overlay closed",
		logger.Component("overlay"),
		logger.EntryID(e.ID.String()),
		logger.Reason(reason.String()),
	)
	s.hook("unmount", func() {
		if s.surface != nil {
			s.surface.Unmount(e.ID, reason)
		}
	})
	if e.OnClosed != nil {
		s.hook("closed", func() { e.OnClosed(reason) })
	}
}

func (s *Slot[V]) stopTimers() {
	if s.dismiss != nil {
		s.dismiss.Stop()
		s.dismiss = nil
	}
	if s.tween != nil {
		s.tween.timer.Stop()
		s.tween = nil
	}
}

// animate tweens the entry's progress to target. A partial distance takes
// a proportional share of AnimationDuration.
func (s *Slot[V]) animate(target float64, done func()) {
	from := s.entry.Progress
	d := time.Duration(float64(s.cfg.AnimationDuration) * math.Abs(target-from))
	if d <= 0 {
		s.setProgress(target)
		done()
		return
	}
	tw := &tween{from: from, to: target, start: s.sched.Now(), duration: d, done: done}
	s.tween = tw
	s.schedule(tw, 0)
}

func (s *Slot[V]) schedule(tw *tween, elapsed time.Duration) {
	step := min(s.cfg.FrameInterval, tw.duration-elapsed)
	tw.timer = s.sched.AfterFunc(step, func() { s.frame(tw) })
}

func (s *Slot[V]) frame(tw *tween) {
	if s.tween != tw {
		return
	}
	elapsed := s.sched.Now().Sub(tw.start)
	frac := float64(elapsed) / float64(tw.duration)
	if frac < 1 {
		s.setProgress(tw.from + (tw.to-tw.from)*s.easing(frac))
		s.schedule(tw, elapsed)
		return
	}
	s.tween = nil
	s.setProgress(tw.to)
	tw.done()
}

func (s *Slot[V]) setProgress(p float64) {
	p = min(max(p, 0), 1)
	s.entry.Progress = p
	id := s.entry.ID
	if s.surface != nil {
		s.hook("progress", func() { s.surface.Progress(id, p) })
	}
}

func (s *Slot[V]) fire(ev event) bool {
	if err := s.fsm.Fire(context.Background(), ev, nil); err != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelWarn, "overlay transition refused",
			logger.Component("overlay"),
			logger.State(s.fsm.Current().String()),
			logger.Error(err),
		)
		return false
	}
	return true
}

func (s *Slot[V]) logTransition(ctx context.Context, from, to State, ev event, _ any) {
	s.logger.LogAttrs(ctx, slog.LevelDebug, "overlay transition",
		logger.Component("overlay"),
		slog.String("from", from.String()),
		logger.State(to.String()),
		slog.String("event", ev.String()),
	)
}

// hook runs a user callback, logging a panic instead of propagating it.
func (s *Slot[V]) hook(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.LogAttrs(context.Background(), slog.LevelError, "overlay hook panicked",
				logger.Component("overlay"),
				slog.String("hook", name),
				logger.Panic(r),
			)
		}
	}()
	fn()
}
