package transient

import (
	"fmt"
	"reflect"
)

// UnknownError is the display text used when an error value carries no message.
const UnknownError = "unknown error"

// DisplayString turns an arbitrary value into text suitable for an error
// message. Nil, including a typed nil pointer, becomes UnknownError, and so
// does a value whose Error or String method panics.
func DisplayString(v any) (text string) {
	if isNil(v) {
		return UnknownError
	}
	defer func() {
		if r := recover(); r != nil {
			text = UnknownError
		}
	}()

	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(v)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
