package overlay

import (
	"context"

	"github.com/dmitrymomot/toastkit/pkg/delivery"
)

// Presenter routes notifications to an overlay Slot and text events to a
// base presenter.
type Presenter[V any] struct {
	base delivery.Presenter[V]
	slot *Slot[V]
}

// NewPresenter combines base, used for errors and info, with slot, used
// for notifications. A nil base discards text events.
func NewPresenter[V any](base delivery.Presenter[V], slot *Slot[V]) *Presenter[V] {
	if base == nil {
		base = delivery.NoOpPresenter[V]{}
	}
	return &Presenter[V]{base: base, slot: slot}
}

func (p *Presenter[V]) ShowError(ctx context.Context, text string) {
	p.base.ShowError(ctx, text)
}

func (p *Presenter[V]) ShowInfo(ctx context.Context, text string) {
	p.base.ShowInfo(ctx, text)
}

func (p *Presenter[V]) ShowNotification(ctx context.Context, payload V) {
	p.slot.ShowNotification(ctx, payload)
}

// Slot returns the overlay slot.
func (p *Presenter[V]) Slot() *Slot[V] {
	return p.slot
}
