package transient

import "errors"

var (
	// ErrUnknownSlot is returned for a slot value outside the declared set.
	ErrUnknownSlot = errors.New("transient: unknown slot")

	// ErrPayloadType is returned when a raised value does not match the notification payload type.
	ErrPayloadType = errors.New("transient: payload type mismatch")

	// ErrNilValue is returned when nil is raised on a slot that cannot coerce it.
	ErrNilValue = errors.New("transient: nil value")
)
