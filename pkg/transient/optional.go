package transient

// Optional holds a value that may be absent.
// It is comparable whenever T is, which is what change detection relies on.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrZero returns the value, or the zero value of T when absent.
func (o Optional[T]) OrZero() T {
	return o.value
}

// Slice is the tuple of slot values watched for change detection.
// Two slices are equal when every element is equal, so == is the comparison.
type Slice[P comparable] struct {
	Error        Optional[string]
	Info         Optional[string]
	Notification Optional[P]
}

// Has reports whether the element for slot is present.
func (s Slice[P]) Has(slot Slot) bool {
	switch slot {
	case SlotError:
		return s.Error.IsSet()
	case SlotInfo:
		return s.Info.IsSet()
	case SlotNotification:
		return s.Notification.IsSet()
	}
	return false
}

// IsEmpty reports whether no element is present.
func (s Slice[P]) IsEmpty() bool {
	return !s.Error.IsSet() && !s.Info.IsSet() && !s.Notification.IsSet()
}

// Without returns a copy of s with the element for slot emptied.
func (s Slice[P]) Without(slot Slot) Slice[P] {
	switch slot {
	case SlotError:
		s.Error = None[string]()
	case SlotInfo:
		s.Info = None[string]()
	case SlotNotification:
		s.Notification = None[P]()
	}
	return s
}
