package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Panic records a recovered panic value under the key "panic".
// If v is nil, it returns an empty Attr.
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("panic", v)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Slot records a transient slot name under the key "slot".
func Slot(name string) slog.Attr {
	return slog.String("slot", name)
}

// EntryID records an overlay entry identifier under the key "entry_id".
// If id is empty, it returns an empty Attr.
func EntryID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("entry_id", id)
}

// State records a state name under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Reason records why something closed or was skipped under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// Policy records a policy name under the key "policy".
func Policy(name string) slog.Attr {
	return slog.String("policy", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
