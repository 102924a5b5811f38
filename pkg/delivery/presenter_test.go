package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/delivery"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/transient"
)

func TestMultiPresenter(t *testing.T) {
	t.Run("forwards to every presenter", func(t *testing.T) {
		ctx := context.Background()
		first := &MockPresenter{}
		second := &MockPresenter{}
		first.On("ShowError", ctx, "e").Once()
		second.On("ShowError", ctx, "e").Once()
		first.On("ShowNotification", ctx, toast{Title: "n"}).Once()
		second.On("ShowNotification", ctx, toast{Title: "n"}).Once()

		m := delivery.NewMultiPresenter([]delivery.Presenter[toast]{first, nil, second})
		m.ShowError(ctx, "e")
		m.ShowNotification(ctx, toast{Title: "n"})

		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("panicking presenter does not block the rest", func(t *testing.T) {
		ctx := context.Background()
		broken := delivery.PresenterFuncs[toast]{
			Info: func(context.Context, string) { panic("broken") },
		}
		ok := &MockPresenter{}
		ok.On("ShowInfo", ctx, "i").Once()

		m := delivery.NewMultiPresenter(
			[]delivery.Presenter[toast]{broken, ok},
			delivery.WithMultiPresenterLogger[toast](logger.Nop()),
		)
		require.NotPanics(t, func() { m.ShowInfo(ctx, "i") })
		ok.AssertExpectations(t)
	})
}

func TestPresenterFuncs_NilHooks(t *testing.T) {
	var p delivery.PresenterFuncs[toast]
	assert.NotPanics(t, func() {
		p.ShowError(context.Background(), "e")
		p.ShowInfo(context.Background(), "i")
		p.ShowNotification(context.Background(), toast{})
	})
}

func TestStreamPresenter(t *testing.T) {
	t.Run("subscribers receive events", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](4)
		defer s.Close()

		sub := s.Subscribe(context.Background())
		s.ShowError(context.Background(), "e")
		s.ShowNotification(context.Background(), toast{Title: "n"})

		got := <-sub.Receive()
		assert.Equal(t, transient.SlotError, got.Slot)
		assert.Equal(t, "e", got.Text)
		assert.False(t, got.At.IsZero())

		got = <-sub.Receive()
		assert.Equal(t, transient.SlotNotification, got.Slot)
		assert.Equal(t, "n", got.Payload.Title)
	})

	t.Run("slow subscriber drops instead of blocking", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](1)
		defer s.Close()

		sub := s.Subscribe(context.Background())
		s.ShowInfo(context.Background(), "1")
		s.ShowInfo(context.Background(), "2")
		s.ShowInfo(context.Background(), "3")

		assert.Equal(t, 2, sub.Dropped())
		assert.Equal(t, "1", (<-sub.Receive()).Text)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](4)
		defer s.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := s.Subscribe(ctx)
		cancel()

		require.Eventually(t, func() bool {
			select {
			case _, ok := <-sub.Receive():
				return !ok
			default:
				return false
			}
		}, time.Second, 5*time.Millisecond)
		require.Eventually(t, func() bool { return s.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("explicit close unsubscribes", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](4)
		defer s.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sub := s.Subscribe(ctx)
		other := s.Subscribe(ctx)
		require.Equal(t, 2, s.Subscribers())

		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		assert.Equal(t, 1, s.Subscribers())

		_, ok := <-sub.Receive()
		assert.False(t, ok)

		s.ShowInfo(context.Background(), "still delivered")
		assert.Equal(t, "still delivered", (<-other.Receive()).Text)
	})

	t.Run("presenter close releases subscriptions", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](4)
		sub := s.Subscribe(context.Background())

		require.NoError(t, s.Close())
		assert.Zero(t, s.Subscribers())
		_, ok := <-sub.Receive()
		assert.False(t, ok)
		assert.NoError(t, sub.Close())
	})

	t.Run("subscribe after close returns closed subscription", func(t *testing.T) {
		s := delivery.NewStreamPresenter[toast](4)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		sub := s.Subscribe(context.Background())
		_, ok := <-sub.Receive()
		assert.False(t, ok)

		assert.NotPanics(t, func() { s.ShowInfo(context.Background(), "ignored") })
	})
}
