package overlay

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the phase of a Slot.
type State uint8

const (
	StateEmpty State = iota
	StateEntering
	StateVisible
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// CloseReason tells OnClosed why an entry left the slot.
type CloseReason uint8

const (
	// ReasonReplaced means a newer Show displaced the entry.
	ReasonReplaced CloseReason = iota
	// ReasonTimeout means the auto-dismiss timer expired.
	ReasonTimeout
	// ReasonDismissed means Dismiss was called, usually from a swipe.
	ReasonDismissed
	// ReasonTapped means the entry was tapped.
	ReasonTapped
	// ReasonClosed means the slot itself was closed.
	ReasonClosed
)

func (r CloseReason) String() string {
	switch r {
	case ReasonReplaced:
		return "replaced"
	case ReasonTimeout:
		return "timeout"
	case ReasonDismissed:
		return "dismissed"
	case ReasonTapped:
		return "tapped"
	case ReasonClosed:
		return "closed"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Entry describes one overlay. Style is opaque to the slot and passed
// through to the Surface.
type Entry[V any] struct {
	ID       uuid.UUID
	Value    V
	Style    any
	Progress float64

	OnTap    func(value V)
	OnClosed func(reason CloseReason)
}

// Surface renders entries. All methods are optional in spirit: a Slot
// without a Surface still runs its state machine and callbacks.
type Surface[V any] interface {
	Mount(entry Entry[V])
	Progress(id uuid.UUID, progress float64)
	Unmount(id uuid.UUID, reason CloseReason)
}

// Easing maps linear time progress in [0,1] to animation progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates towards the end.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
