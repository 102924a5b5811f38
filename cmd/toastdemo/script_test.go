package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := parseScript(strings.NewReader(`
steps:
  - do: notify Welcome
  - after: 150ms
    do: info Saved
  - do: quit
`))
		require.NoError(t, err)
		require.Len(t, s.Steps, 3)
		assert.Equal(t, 150*time.Millisecond, s.Steps[1].After)
		assert.Equal(t, "info Saved", s.Steps[1].Do)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parseScript(strings.NewReader("steps: []\n"))
		assert.ErrorIs(t, err, errEmptyScript)
	})

	t.Run("bad command", func(t *testing.T) {
		_, err := parseScript(strings.NewReader("steps:\n  - do: shout\n"))
		assert.ErrorIs(t, err, errUnknownCommand)
	})
}

func TestScriptPlay(t *testing.T) {
	s := &script{Steps: []step{
		{Do: "error boom"},
		{After: time.Millisecond, Do: "tap"},
		{Do: "quit"},
		{Do: "info unreachable"},
	}}

	var got []command
	err := s.play(context.Background(), func(c command) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []command{{kind: cmdError, arg: "boom"}, {kind: cmdTap}}, got)
}

func TestScriptPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &script{Steps: []step{{After: time.Hour, Do: "tap"}}}
	called := false
	require.NoError(t, s.play(ctx, func(command) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
