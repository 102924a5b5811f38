package transient

import (
	"fmt"
	"strings"
)

// Slot names one transient field of a Model.
type Slot uint8

const (
	SlotError Slot = iota
	SlotInfo
	SlotNotification
)

// Slots returns every slot in default delivery precedence.
func Slots() []Slot {
	return []Slot{SlotError, SlotInfo, SlotNotification}
}

func (s Slot) String() string {
	switch s {
	case SlotError:
		return "error"
	case SlotInfo:
		return "info"
	case SlotNotification:
		return "notification"
	default:
		return fmt.Sprintf("slot(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the declared slots.
func (s Slot) Valid() bool {
	return s <= SlotNotification
}

// ParseSlot converts a slot name into a Slot. Matching is case-insensitive.
func ParseSlot(name string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SlotError, nil
	case "info":
		return SlotInfo, nil
	case "notification":
		return SlotNotification, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSlot, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
