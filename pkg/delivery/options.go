package delivery

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Deliverer or a Bridge.
type Option func(*options)

type options struct {
	cfg    Config
	active func() bool
	logger *slog.Logger
	ctx    context.Context
}

func newOptions(opts []Option) *options {
	o := &options{
		cfg:    DefaultConfig(),
		active: func() bool { return true },
		logger: slog.Default(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.cfg = o.cfg.normalized()
	return o
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithPrecedence sets the delivery order of slots raised together.
func WithPrecedence(p Precedence) Option {
	return func(o *options) {
		o.cfg.Precedence = p
	}
}

// WithInactivePolicy sets what happens when the consumer is not active.
// interval only matters for PolicyRetry; zero keeps the current value.
func WithInactivePolicy(p Policy, interval time.Duration) Option {
	return func(o *options) {
		o.cfg.InactivePolicy = p
		if interval > 0 {
			o.cfg.RetryInterval = interval
		}
	}
}

// WithActive sets the still-active predicate, for example "this screen is in
// the foreground". Defaults to always active.
func WithActive(fn func() bool) Option {
	return func(o *options) {
		if fn != nil {
			o.active = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithContext sets the context a Bridge passes to presenter hooks.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
