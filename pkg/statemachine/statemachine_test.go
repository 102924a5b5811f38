package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/statemachine"
)

type docState string

type docEvent string

const (
	Draft     docState = "draft"
	InReview  docState = "in_review"
	Approved  docState = "approved"
	Published docState = "published"
	Rejected  docState = "rejected"
)

const (
	Submit  docEvent = "submit"
	Approve docEvent = "approve"
	Reject  docEvent = "reject"
	Publish docEvent = "publish"
	Archive docEvent = "archive"
)

type (
	option = statemachine.Option[docState, docEvent]
	guard  = statemachine.Guard[docState, docEvent]
	action = statemachine.Action[docState, docEvent]
)

func transition(from, to docState, event docEvent, opts ...statemachine.TransitionOption[docState, docEvent]) option {
	return statemachine.WithTransition(from, to, event, opts...)
}

func TestMachine_BasicTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sm := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Approved, Approve),
	)
	assert.Equal(t, Draft, sm.Current())
	assert.True(t, sm.CanFire(ctx, Submit, nil))
	assert.False(t, sm.CanFire(ctx, Approve, nil))

	require.NoError(t, sm.Fire(ctx, Submit, nil))
	assert.Equal(t, InReview, sm.Current())

	require.NoError(t, sm.Fire(ctx, Approve, nil))
	assert.True(t, sm.Is(Approved, Published))

	sm.Reset()
	assert.Equal(t, Draft, sm.Current())
}

func TestMachine_UndefinedTransition(t *testing.T) {
	t.Parallel()

	sm := statemachine.MustNew(Draft, transition(Draft, InReview, Submit))

	err := sm.Fire(context.Background(), Publish, nil)
	require.Error(t, err)
	assert.True(t, statemachine.IsNoTransitionAvailableError(err))
	assert.False(t, statemachine.IsTransitionRejectedError(err))
	assert.Contains(t, err.Error(), "draft")
	assert.Contains(t, err.Error(), "publish")
	assert.Equal(t, Draft, sm.Current())
}

func TestMachine_Guards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	isOwner := guard(func(_ context.Context, _ docState, _ docEvent, data any) bool {
		role, _ := data.(string)
		return role == "owner"
	})
	always := guard(func(context.Context, docState, docEvent, any) bool { return true })

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(InReview,
			transition(InReview, Approved, Approve, statemachine.WithGuard(isOwner)),
		)

		err := sm.Fire(ctx, Approve, "viewer")
		require.Error(t, err)
		assert.True(t, statemachine.IsTransitionRejectedError(err))
		assert.False(t, sm.CanFire(ctx, Approve, "viewer"))
		assert.Equal(t, InReview, sm.Current())

		require.NoError(t, sm.Fire(ctx, Approve, "owner"))
		assert.Equal(t, Approved, sm.Current())
	})

	t.Run("first passing transition wins", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(InReview,
			transition(InReview, Approved, Approve, statemachine.WithGuard(isOwner)),
			transition(InReview, Rejected, Approve, statemachine.WithGuard(always)),
		)

		require.NoError(t, sm.Fire(ctx, Approve, "viewer"))
		assert.Equal(t, Rejected, sm.Current())
	})
}

func TestMachine_Actions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("run in order before the state changes", func(t *testing.T) {
		t.Parallel()
		var calls []string
		record := func(name string) action {
			return func(_ context.Context, from, to docState, event docEvent, _ any) error {
				calls = append(calls, name+":"+string(from)+"->"+string(to)+"@"+string(event))
				return nil
			}
		}
		sm := statemachine.MustNew(Draft,
			transition(Draft, InReview, Submit, statemachine.WithAction(record("a"), record("b"))),
		)

		require.NoError(t, sm.Fire(ctx, Submit, nil))
		assert.Equal(t, []string{"a:draft->in_review@submit", "b:draft->in_review@submit"}, calls)
	})

	t.Run("failure aborts the transition", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		sm := statemachine.MustNew(Draft,
			transition(Draft, InReview, Submit, statemachine.WithAction(action(
				func(context.Context, docState, docState, docEvent, any) error { return boom },
			))),
		)

		err := sm.Fire(ctx, Submit, nil)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, Draft, sm.Current())
	})
}

func TestMachine_Listeners(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen []docState
	var sm *statemachine.Machine[docState, docEvent]
	sm = statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Rejected, Reject),
		statemachine.WithListener[docState, docEvent](func(_ context.Context, from, to docState, _ docEvent, _ any) {
			// Listeners may query the machine.
			assert.Equal(t, to, sm.Current())
			seen = append(seen, from, to)
		}),
	)

	require.NoError(t, sm.Fire(ctx, Submit, nil))
	require.NoError(t, sm.Fire(ctx, Reject, nil))
	require.Error(t, sm.Fire(ctx, Reject, nil))

	assert.Equal(t, []docState{Draft, InReview, InReview, Rejected}, seen)
}

func TestMachine_FanIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, start := range []docState{Draft, InReview, Approved} {
		sm := statemachine.MustNew(start,
			statemachine.WithFanIn([]docState{Draft, InReview, Approved}, Rejected, Archive),
		)
		require.NoError(t, sm.Fire(ctx, Archive, nil))
		assert.Equal(t, Rejected, sm.Current())
	}
}

func TestMachine_WithTransitions(t *testing.T) {
	t.Parallel()

	sm, err := statemachine.New(Draft, statemachine.WithTransitions(
		statemachine.Transition[docState, docEvent]{From: Draft, To: InReview, Event: Submit},
		statemachine.Transition[docState, docEvent]{From: InReview, To: Approved, Event: Approve},
	))
	require.NoError(t, err)
	assert.ElementsMatch(t, []docEvent{Submit}, sm.Permitted())

	require.NoError(t, sm.Fire(context.Background(), Submit, nil))
	assert.ElementsMatch(t, []docEvent{Approve}, sm.Permitted())
}

func TestMachine_OptionError(t *testing.T) {
	t.Parallel()

	failing := option(func(*statemachine.Machine[docState, docEvent]) error {
		return errors.New("bad option")
	})

	_, err := statemachine.New(Draft, failing)
	require.Error(t, err)
	assert.Panics(t, func() { statemachine.MustNew(Draft, failing) })
}

func TestMachine_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sm := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Draft, Reject),
	)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = sm.Fire(ctx, Submit, nil)
				_ = sm.Fire(ctx, Reject, nil)
				_ = sm.Current()
				_ = sm.CanFire(ctx, Submit, nil)
			}
		}()
	}
	wg.Wait()

	assert.True(t, sm.Is(Draft, InReview))
}
