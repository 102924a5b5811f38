package transient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type panickyStringer struct{}

func (panickyStringer) String() string { panic("no") }

type nilErr struct{ msg string }

func (e *nilErr) Error() string { return e.msg }

func TestDisplayString(t *testing.T) {
	var typedNil *nilErr

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "plain", want: "plain"},
		{name: "error", in: errors.New("boom"), want: "boom"},
		{name: "bytes", in: []byte("raw"), want: "raw"},
		{name: "number", in: 3.5, want: "3.5"},
		{name: "nil", in: nil, want: UnknownError},
		{name: "typed nil pointer", in: typedNil, want: UnknownError},
		{name: "panicking stringer", in: panickyStringer{}, want: UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayString(tt.in))
		})
	}
}
