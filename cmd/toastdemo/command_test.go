package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    command
		wantErr error
	}{
		{line: "error network timeout", want: command{kind: cmdError, arg: "network timeout"}},
		{line: "  info   Saved ", want: command{kind: cmdInfo, arg: "Saved"}},
		{line: "n New message", want: command{kind: cmdNotify, arg: "New message"}},
		{line: "TAP", want: command{kind: cmdTap}},
		{line: "swipe", want: command{kind: cmdDismiss}},
		{line: "bg", want: command{kind: cmdBackground}},
		{line: "fg", want: command{kind: cmdForeground}},
		{line: "quit", want: command{kind: cmdQuit}},
		{line: "info", wantErr: errMissingText},
		{line: "shout hello", wantErr: errUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCommands(t *testing.T) {
	t.Run("stops at quit", func(t *testing.T) {
		var got []command
		in := strings.NewReader("info one\n\nbogus\nnotify two\nquit\ninfo never\n")

		err := readCommands(context.Background(), in, func(c command) error {
			got = append(got, c)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []command{
			{kind: cmdInfo, arg: "one"},
			{kind: cmdHelp},
			{kind: cmdNotify, arg: "two"},
		}, got)
	})

	t.Run("returns handler error", func(t *testing.T) {
		boom := errors.New("boom")
		err := readCommands(context.Background(), strings.NewReader("tap\n"), func(command) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("returns on eof", func(t *testing.T) {
		err := readCommands(context.Background(), strings.NewReader("tap"), func(command) error {
			return nil
		})
		assert.NoError(t, err)
	})
}
