// Package delivery delivers transient model events to a Presenter exactly
// once, after the mutation that raised them.
//
// # Architecture
//
//   - Presenter: the rendering collaborator (ShowError, ShowInfo,
//     ShowNotification). PresenterFuncs, MultiPresenter, StreamPresenter and
//     NoOpPresenter cover the common shapes.
//   - Deliverer: schedules one deferred task per non-empty slot in a
//     dispatched slice. The task checks liveness and the still-active
//     predicate, calls the presenter hook once and clears the slot.
//   - Bridge: the composition root that subscribes a selector to the model
//     and feeds the deliverer.
//
// # Usage
//
//	sched := loop.New()
//	go sched.Run(ctx)
//
//	model := transient.New[Toast](sched)
//	bridge := delivery.NewBridge(sched, model, presenter,
//	    delivery.WithActive(screen.IsForeground),
//	)
//	defer bridge.Close()
//
//	sched.Do(func() { model.RaiseError(err) })
//
// # Ordering
//
// Slots raised within one unit of work are captured by a single selector
// recompute and delivered in Config.Precedence order, errors first by
// default. A raise on a slot whose delivery is already pending overwrites the
// value; the task reads the slot when it runs, not when it was scheduled.
//
// # Inactive consumers
//
// When the still-active predicate reports false the event is neither shown
// nor silently lost; Config.InactivePolicy decides:
//
//   - PolicyRetry (default): check again every RetryInterval.
//   - PolicyHold: keep the value until the next dispatch or Recheck.
//   - PolicyDrop: clear the slot without showing it.
//
// # Error Handling
//
// Nothing crosses the presenter boundary. A panicking hook is recovered and
// logged, and the slot is cleared as if the delivery had succeeded.
package delivery
