package delivery

import (
	"context"

	"github.com/dmitrymomot/toastkit/pkg/loop"
	"github.com/dmitrymomot/toastkit/pkg/selector"
	"github.com/dmitrymomot/toastkit/pkg/transient"
)

// Bridge wires a model to a presenter:
// raise → guarded change signal → selector → deliverer → presenter → clear.
type Bridge[P comparable] struct {
	model       *transient.Model[P]
	selector    *selector.Selector[transient.Slice[P]]
	deliverer   *Deliverer[P]
	ctx         context.Context
	unsubscribe func()
}

// NewBridge subscribes to model's change signal. Everything runs on sched,
// which must be the scheduler the model was created with.
func NewBridge[P comparable](sched loop.Scheduler, model *transient.Model[P], presenter Presenter[P], opts ...Option) *Bridge[P] {
	o := newOptions(opts)
	b := &Bridge[P]{
		model: model,
		ctx:   o.ctx,
	}
	b.deliverer = NewDeliverer(model, sched, presenter, opts...)
	b.selector = selector.New(model.Snapshot, func(s transient.Slice[P]) {
		b.deliverer.Dispatch(b.ctx, s)
	})
	// The cleared element leaves the baseline so the same value raised
	// again counts as a change.
	b.deliverer.OnCleared(b.forget)
	b.unsubscribe = model.OnChange(func() { b.selector.Signal() })
	return b
}

// Model returns the bridged model.
func (b *Bridge[P]) Model() *transient.Model[P] {
	return b.model
}

// Deliverer returns the underlying deliverer.
func (b *Bridge[P]) Deliverer() *Deliverer[P] {
	return b.deliverer
}

// Clear empties slot on behalf of the model owner. Unlike Model.Clear it
// also drops the slot from the change baseline, so raising the same value
// again is delivered. Like Model.Clear it never dispatches.
func (b *Bridge[P]) Clear(slot transient.Slot) {
	b.model.Clear(slot)
	b.forget(slot)
}

func (b *Bridge[P]) forget(slot transient.Slot) {
	b.selector.Rebase(func(last transient.Slice[P]) transient.Slice[P] {
		return last.Without(slot)
	})
}

// Recheck re-arms delivery of any value still sitting in the model.
func (b *Bridge[P]) Recheck() {
	b.deliverer.Recheck(b.ctx)
}

// Close tears the model down and detaches the bridge. No presenter hook runs
// afterwards, including for tasks that were already scheduled.
func (b *Bridge[P]) Close() {
	b.model.Teardown()
	b.unsubscribe()
	b.deliverer.Stop()
}
