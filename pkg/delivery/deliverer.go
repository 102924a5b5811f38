package delivery

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/loop"
	"github.com/dmitrymomot/toastkit/pkg/transient"
)

// Deliverer turns a dispatched slice into deferred, consume-and-clear
// deliveries. At most one task is pending per slot at any time.
type Deliverer[P comparable] struct {
	model     *transient.Model[P]
	sched     loop.Scheduler
	presenter Presenter[P]
	active    func() bool
	cfg       Config
	logger    *slog.Logger

	pending map[transient.Slot]bool
	retries map[transient.Slot]loop.Timer

	// onCleared runs after a slot is consumed, delivered or dropped.
	onCleared func(transient.Slot)
}

// NewDeliverer creates a deliverer for model. A nil presenter discards events.
func NewDeliverer[P comparable](model *transient.Model[P], sched loop.Scheduler, presenter Presenter[P], opts ...Option) *Deliverer[P] {
	if presenter == nil {
		presenter = NoOpPresenter[P]{}
	}
	o := newOptions(opts)
	return &Deliverer[P]{
		model:     model,
		sched:     sched,
		presenter: presenter,
		active:    o.active,
		cfg:       o.cfg,
		logger:    o.logger,
		pending:   make(map[transient.Slot]bool),
		retries:   make(map[transient.Slot]loop.Timer),
	}
}

// OnCleared registers fn to run after a slot has been consumed.
func (d *Deliverer[P]) OnCleared(fn func(transient.Slot)) {
	d.onCleared = fn
}

// Config returns the normalized configuration in use.
func (d *Deliverer[P]) Config() Config {
	return d.cfg
}

// Dispatch schedules one deferred task for every non-empty element of s,
// in precedence order. Slots that already have a task pending are skipped;
// that task reads the latest value when it runs.
func (d *Deliverer[P]) Dispatch(ctx context.Context, s transient.Slice[P]) {
	for _, slot := range d.cfg.Precedence {
		if !s.Has(slot) || d.pending[slot] {
			continue
		}
		d.pending[slot] = true
		d.sched.Defer(func() { d.run(ctx, slot) })
	}
}

// Recheck schedules delivery for every slot of the model that holds a value
// and has nothing pending. Use it when the consumer becomes active again
// under PolicyHold.
func (d *Deliverer[P]) Recheck(ctx context.Context) {
	d.Dispatch(ctx, d.model.Snapshot())
}

// Pending reports whether slot has a delivery task or retry armed.
func (d *Deliverer[P]) Pending(slot transient.Slot) bool {
	return d.pending[slot]
}

// Stop cancels armed retries. Tasks already deferred still see the model's
// liveness flag and do nothing once it is down.
func (d *Deliverer[P]) Stop() {
	for slot, t := range d.retries {
		t.Stop()
		delete(d.retries, slot)
		delete(d.pending, slot)
	}
}

func (d *Deliverer[P]) run(ctx context.Context, slot transient.Slot) {
	delete(d.pending, slot)
	delete(d.retries, slot)

	if !d.model.Alive() {
		return
	}
	snap := d.model.Snapshot()
	if !snap.Has(slot) {
		// Emptied by the owner since dispatch.
		d.cleared(slot)
		return
	}

	if !d.active() {
		d.inactive(ctx, slot)
		return
	}

	if r := recoverCall(func() { d.present(ctx, slot, snap) }); r != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "presenter panicked",
			logger.Component("delivery"),
			logger.Slot(slot.String()),
			logger.Panic(r),
		)
	} else {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "event delivered",
			logger.Component("delivery"),
			logger.Slot(slot.String()),
		)
	}
	d.clear(slot)
}

func (d *Deliverer[P]) present(ctx context.Context, slot transient.Slot, snap transient.Slice[P]) {
	switch slot {
	case transient.SlotError:
		d.presenter.ShowError(ctx, snap.Error.OrZero())
	case transient.SlotInfo:
		d.presenter.ShowInfo(ctx, snap.Info.OrZero())
	case transient.SlotNotification:
		d.presenter.ShowNotification(ctx, snap.Notification.OrZero())
	}
}

func (d *Deliverer[P]) inactive(ctx context.Context, slot transient.Slot) {
	switch d.cfg.InactivePolicy {
	case PolicyDrop:
		d.logger.LogAttrs(ctx, slog.LevelWarn, "consumer inactive, event dropped",
			logger.Component("delivery"),
			logger.Slot(slot.String()),
			logger.Policy(PolicyDrop.String()),
		)
		d.clear(slot)
	case PolicyHold:
		d.logger.LogAttrs(ctx, slog.LevelDebug, "consumer inactive, event held",
			logger.Component("delivery"),
			logger.Slot(slot.String()),
			logger.Policy(PolicyHold.String()),
		)
	default:
		d.pending[slot] = true
		d.retries[slot] = d.sched.AfterFunc(d.cfg.RetryInterval, func() { d.run(ctx, slot) })
		d.logger.LogAttrs(ctx, slog.LevelDebug, "consumer inactive, retry armed",
			logger.Component("delivery"),
			logger.Slot(slot.String()),
			logger.Policy(PolicyRetry.String()),
			logger.Duration(d.cfg.RetryInterval),
		)
	}
}

func (d *Deliverer[P]) clear(slot transient.Slot) {
	d.model.Clear(slot)
	d.cleared(slot)
}

func (d *Deliverer[P]) cleared(slot transient.Slot) {
	if d.onCleared != nil {
		d.onCleared(slot)
	}
}
