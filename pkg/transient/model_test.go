package transient_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/loop"
	"github.com/dmitrymomot/toastkit/pkg/transient"
)

type toast struct {
	Title string
	Body  string
}

func newModel(t *testing.T) (*transient.Model[toast], *loop.Manual) {
	t.Helper()
	sched := loop.NewManual(loop.WithLogger(logger.Nop()))
	return transient.New[toast](sched, transient.WithLogger(logger.Nop())), sched
}

func TestModel_Raise(t *testing.T) {
	t.Run("signal is deferred until the current unit of work ends", func(t *testing.T) {
		m, sched := newModel(t)
		signals := 0
		m.OnChange(func() { signals++ })

		m.RaiseInfo("Saved")
		assert.Zero(t, signals)

		sched.Drain()
		assert.Equal(t, 1, signals)

		v, ok := m.InfoMessage().Get()
		require.True(t, ok)
		assert.Equal(t, "Saved", v)
	})

	t.Run("raise on a set slot replaces in place", func(t *testing.T) {
		m, sched := newModel(t)
		m.RaiseError("first")
		m.RaiseError("second")
		sched.Drain()

		assert.Equal(t, "second", m.ErrorMessage().OrZero())
	})

	t.Run("error values are coerced to text", func(t *testing.T) {
		m, _ := newModel(t)

		m.RaiseError(errors.New("network timeout"))
		assert.Equal(t, "network timeout", m.ErrorMessage().OrZero())

		m.RaiseError(nil)
		assert.Equal(t, transient.UnknownError, m.ErrorMessage().OrZero())

		m.RaiseError(42)
		assert.Equal(t, "42", m.ErrorMessage().OrZero())
	})

	t.Run("generic raise validates input", func(t *testing.T) {
		m, _ := newModel(t)

		require.NoError(t, m.Raise(transient.SlotNotification, toast{Title: "hi"}))
		assert.Equal(t, "hi", m.Notification().OrZero().Title)

		assert.ErrorIs(t, m.Raise(transient.SlotNotification, "not a toast"), transient.ErrPayloadType)
		assert.ErrorIs(t, m.Raise(transient.SlotInfo, nil), transient.ErrNilValue)
		assert.ErrorIs(t, m.Raise(transient.Slot(9), "x"), transient.ErrUnknownSlot)

		require.NoError(t, m.Raise(transient.SlotError, errors.New("boom")))
		assert.Equal(t, "boom", m.ErrorMessage().OrZero())
	})

	t.Run("nil notification payload is rejected", func(t *testing.T) {
		sched := loop.NewManual(loop.WithLogger(logger.Nop()))
		m := transient.New[*toast](sched, transient.WithLogger(logger.Nop()))

		assert.ErrorIs(t, m.Raise(transient.SlotNotification, nil), transient.ErrNilValue)
		assert.ErrorIs(t, m.Raise(transient.SlotNotification, (*toast)(nil)), transient.ErrNilValue)
		assert.False(t, m.Notification().IsSet())

		require.NoError(t, m.Raise(transient.SlotNotification, &toast{Title: "hi"}))
		assert.Equal(t, "hi", m.Notification().OrZero().Title)
	})
}

func TestModel_Clear(t *testing.T) {
	t.Run("clear is silent", func(t *testing.T) {
		m, sched := newModel(t)
		signals := 0
		m.OnChange(func() { signals++ })

		m.RaiseInfo("x")
		sched.Drain()
		m.Clear(transient.SlotInfo)
		sched.Drain()

		assert.Equal(t, 1, signals)
		assert.False(t, m.InfoMessage().IsSet())
	})

	t.Run("clear on empty slot is a no-op", func(t *testing.T) {
		m, _ := newModel(t)
		assert.NotPanics(t, func() {
			m.Clear(transient.SlotError)
			m.Clear(transient.SlotNotification)
			m.Clear(transient.Slot(42))
		})
		assert.True(t, m.Snapshot().IsEmpty())
	})
}

func TestModel_OnChange(t *testing.T) {
	m, sched := newModel(t)
	var order []string
	unsubA := m.OnChange(func() { order = append(order, "a") })
	m.OnChange(func() { order = append(order, "b") })

	m.RaiseInfo("x")
	sched.Drain()
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	order = nil
	m.RaiseInfo("y")
	sched.Drain()
	assert.Equal(t, []string{"b"}, order)
}

func TestModel_Teardown(t *testing.T) {
	t.Run("pending signal is dropped", func(t *testing.T) {
		m, sched := newModel(t)
		signals := 0
		m.OnChange(func() { signals++ })

		m.RaiseError("x")
		m.Teardown()
		sched.Drain()

		assert.Zero(t, signals)
		assert.False(t, m.Alive())
	})

	t.Run("raise after teardown never signals", func(t *testing.T) {
		m, sched := newModel(t)
		signals := 0
		m.OnChange(func() { signals++ })

		m.Teardown()
		m.RaiseInfo("late")
		sched.Drain()

		assert.Zero(t, signals)
	})

	t.Run("delayed teardown", func(t *testing.T) {
		m, sched := newModel(t)
		m.TeardownAfter(time.Second)

		sched.Advance(500 * time.Millisecond)
		assert.True(t, m.Alive())

		sched.Advance(500 * time.Millisecond)
		assert.False(t, m.Alive())
	})

	t.Run("delayed teardown can be cancelled", func(t *testing.T) {
		m, sched := newModel(t)
		m.TeardownAfter(time.Second)
		assert.True(t, m.CancelTeardown())
		assert.False(t, m.CancelTeardown())

		sched.Advance(2 * time.Second)
		assert.True(t, m.Alive())
	})
}

func TestSlice(t *testing.T) {
	a := transient.Slice[toast]{Info: transient.Some("Saved")}
	b := transient.Slice[toast]{Info: transient.Some("Saved")}
	c := transient.Slice[toast]{Info: transient.Some("Saved"), Notification: transient.Some(toast{Title: "t"})}

	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.True(t, c.Has(transient.SlotNotification))
	assert.False(t, a.Has(transient.SlotError))
	assert.True(t, transient.Slice[toast]{}.IsEmpty())
	assert.Equal(t, transient.Slice[toast]{Info: transient.Some("Saved")}, c.Without(transient.SlotNotification))
}

func TestParseSlot(t *testing.T) {
	for _, s := range transient.Slots() {
		parsed, err := transient.ParseSlot(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := transient.ParseSlot("warning")
	assert.ErrorIs(t, err, transient.ErrUnknownSlot)

	var s transient.Slot
	require.NoError(t, s.UnmarshalText([]byte(" Info ")))
	assert.Equal(t, transient.SlotInfo, s)
}
