package delivery

import "errors"

var (
	// ErrUnknownPolicy is returned when an inactive policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("delivery: unknown inactive policy")

	// ErrInvalidPrecedence is returned when a precedence list names a slot twice or an unknown slot.
	ErrInvalidPrecedence = errors.New("delivery: invalid precedence")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("delivery: invalid config")
)
