// Package statemachine provides a small generic finite state machine.
//
// States and events are any comparable types, usually small integer or
// string enums declared by the caller. Transitions are registered up front
// with functional options and looked up in a nested map keyed by state and
// event. Each transition may carry guards, which veto it, and actions, which
// run before the state changes and abort the transition on error. Listeners
// observe completed transitions.
//
// # Usage
//
//	type phase int
//	type event string
//
//	const (
//	    idle phase = iota
//	    running
//	)
//
//	m := statemachine.MustNew[phase, event](idle,
//	    statemachine.WithTransition[phase, event](idle, running, "start"),
//	    statemachine.WithTransition[phase, event](running, idle, "stop"),
//	)
//
//	_ = m.Fire(ctx, "start", nil)
//
// # Error Handling
//
// Fire distinguishes an undefined transition from one rejected by guards:
//
//	if err := m.Fire(ctx, "stop", nil); err != nil {
//	    switch {
//	    case statemachine.IsNoTransitionAvailableError(err):
//	        // event not defined for the current state
//	    case statemachine.IsTransitionRejectedError(err):
//	        // blocked by a guard
//	    }
//	}
//
// Machine is safe for concurrent use. Actions run while the machine is
// locked and must not call back into it; listeners run after it is unlocked.
package statemachine
