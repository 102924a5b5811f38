package transient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/loop"
)

// Model owns the transient slots. P is the notification payload type.
type Model[P comparable] struct {
	*Guard

	errMsg Optional[string]
	info   Optional[string]
	notif  Optional[P]

	listeners []listener
	nextID    uint64
	logger    *slog.Logger
}

type listener struct {
	id uint64
	fn func()
}

// Option configures a Model.
type Option func(*modelOptions)

type modelOptions struct {
	logger *slog.Logger
}

// WithLogger sets the model logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *modelOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a live, empty model whose change signals run on s.
func New[P comparable](s loop.Scheduler, opts ...Option) *Model[P] {
	o := &modelOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return &Model[P]{
		Guard:  NewGuard(s),
		logger: o.logger,
	}
}

// OnChange registers fn to be called on every change signal, in
// registration order. The returned function removes it.
func (m *Model[P]) OnChange(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// RaiseError stores v, coerced to a display string, in the error slot.
func (m *Model[P]) RaiseError(v any) {
	m.errMsg = Some(DisplayString(v))
	m.changed(SlotError)
}

// RaiseInfo stores text in the info slot.
func (m *Model[P]) RaiseInfo(text string) {
	m.info = Some(text)
	m.changed(SlotInfo)
}

// RaiseNotification stores p in the notification slot.
func (m *Model[P]) RaiseNotification(p P) {
	m.notif = Some(p)
	m.changed(SlotNotification)
}

// Raise stores v in slot. Error values are coerced to text; info accepts
// anything DisplayString understands except nil; notification requires a
// non-nil P.
func (m *Model[P]) Raise(slot Slot, v any) error {
	switch slot {
	case SlotError:
		m.RaiseError(v)
	case SlotInfo:
		if isNil(v) {
			return fmt.Errorf("%w: slot %s", ErrNilValue, slot)
		}
		m.RaiseInfo(DisplayString(v))
	case SlotNotification:
		if isNil(v) {
			return fmt.Errorf("%w: slot %s", ErrNilValue, slot)
		}
		p, ok := v.(P)
		if !ok {
			return fmt.Errorf("%w: slot %s got %T", ErrPayloadType, slot, v)
		}
		m.RaiseNotification(p)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	return nil
}

// Clear empties slot without firing a change signal. Clearing an empty slot
// is a no-op.
func (m *Model[P]) Clear(slot Slot) {
	switch slot {
	case SlotError:
		m.errMsg = None[string]()
	case SlotInfo:
		m.info = None[string]()
	case SlotNotification:
		m.notif = None[P]()
	}
}

func (m *Model[P]) ErrorMessage() Optional[string] { return m.errMsg }

func (m *Model[P]) InfoMessage() Optional[string] { return m.info }

func (m *Model[P]) Notification() Optional[P] { return m.notif }

// Snapshot returns the current value of every slot.
func (m *Model[P]) Snapshot() Slice[P] {
	return Slice[P]{Error: m.errMsg, Info: m.info, Notification: m.notif}
}

func (m *Model[P]) changed(slot Slot) {
	if !m.Alive() {
		m.logger.LogAttrs(context.Background(), slog.LevelDebug, "raise on torn down model ignored",
			logger.Component("transient"),
			logger.Slot(slot.String()),
		)
		return
	}
	m.NotifySafe(m.emit)
}

func (m *Model[P]) emit() {
	// Listeners may unsubscribe while being notified.
	ls := append([]listener(nil), m.listeners...)
	for _, l := range ls {
		l.fn()
	}
}
