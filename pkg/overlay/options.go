package overlay

import "log/slog"

// Option configures a Slot.
type Option[V any] func(*Slot[V])

// WithConfig sets the timings. Negative values are clamped to zero.
func WithConfig[V any](cfg Config) Option[V] {
	return func(s *Slot[V]) {
		s.cfg = cfg.normalized()
	}
}

// WithSurface sets the renderer.
func WithSurface[V any](surface Surface[V]) Option[V] {
	return func(s *Slot[V]) {
		s.surface = surface
	}
}

// WithEasing sets the tween curve. Defaults to Linear.
func WithEasing[V any](e Easing) Option[V] {
	return func(s *Slot[V]) {
		if e != nil {
			s.easing = e
		}
	}
}

// WithTemplate sets how ShowNotification turns a payload into an Entry.
// The returned entry's Value is always replaced by the payload.
func WithTemplate[V any](fn func(value V) Entry[V]) Option[V] {
	return func(s *Slot[V]) {
		if fn != nil {
			s.template = fn
		}
	}
}

// WithLogger sets the logger used for transitions and recovered hook panics.
func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(s *Slot[V]) {
		if l != nil {
			s.logger = l
		}
	}
}
