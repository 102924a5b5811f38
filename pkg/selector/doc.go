// Package selector forwards a change signal only when a derived value changes.
//
// A Selector recomputes its value on every Signal and compares it with the
// value captured at the last dispatch. Dispatch happens only when the two
// differ, which is what keeps an event from being delivered again when some
// unrelated part of the model changes.
//
//	sel := selector.New(model.Snapshot, func(s transient.Slice[Toast]) {
//	    deliverer.Dispatch(ctx, s)
//	})
//	model.OnChange(sel.Signal)
//
// S must be comparable; the default comparison is ==, element by element for
// struct tuples. WithEqual replaces it.
//
// Observe and Rebase move the baseline without dispatching. A consumer that
// clears what it delivered rebases the cleared element, so raising the same
// value again is seen as a new change while other pending changes are kept.
package selector
