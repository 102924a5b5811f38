package delivery

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Presenter renders delivered events. Each hook is called at most once per
// event. Presenters must not call back into the model synchronously; work
// that needs the model should be deferred on the scheduler.
type Presenter[P any] interface {
	ShowError(ctx context.Context, text string)
	ShowInfo(ctx context.Context, text string)
	ShowNotification(ctx context.Context, payload P)
}

// PresenterFuncs adapts plain functions to Presenter. Nil hooks are skipped.
type PresenterFuncs[P any] struct {
	Error        func(ctx context.Context, text string)
	Info         func(ctx context.Context, text string)
	Notification func(ctx context.Context, payload P)
}

func (f PresenterFuncs[P]) ShowError(ctx context.Context, text string) {
	if f.Error != nil {
		f.Error(ctx, text)
	}
}

func (f PresenterFuncs[P]) ShowInfo(ctx context.Context, text string) {
	if f.Info != nil {
		f.Info(ctx, text)
	}
}

func (f PresenterFuncs[P]) ShowNotification(ctx context.Context, payload P) {
	if f.Notification != nil {
		f.Notification(ctx, payload)
	}
}

// NoOpPresenter discards every event.
type NoOpPresenter[P any] struct{}

func (NoOpPresenter[P]) ShowError(context.Context, string) {}

func (NoOpPresenter[P]) ShowInfo(context.Context, string) {}

func (NoOpPresenter[P]) ShowNotification(context.Context, P) {}

// MultiPresenter forwards every event to several presenters in order.
// A presenter that panics is logged and skipped; the rest still run.
type MultiPresenter[P any] struct {
	presenters []Presenter[P]
	logger     *slog.Logger
}

// MultiPresenterOption configures a MultiPresenter.
type MultiPresenterOption[P any] func(*MultiPresenter[P])

// WithMultiPresenterLogger sets the logger for the MultiPresenter.
func WithMultiPresenterLogger[P any](l *slog.Logger) MultiPresenterOption[P] {
	return func(m *MultiPresenter[P]) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMultiPresenter creates a fan-out presenter. Nil entries are ignored.
func NewMultiPresenter[P any](presenters []Presenter[P], opts ...MultiPresenterOption[P]) *MultiPresenter[P] {
	m := &MultiPresenter[P]{logger: slog.Default()}
	for _, p := range presenters {
		if p != nil {
			m.presenters = append(m.presenters, p)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MultiPresenter[P]) ShowError(ctx context.Context, text string) {
	m.each(ctx, "error", func(p Presenter[P]) { p.ShowError(ctx, text) })
}

func (m *MultiPresenter[P]) ShowInfo(ctx context.Context, text string) {
	m.each(ctx, "info", func(p Presenter[P]) { p.ShowInfo(ctx, text) })
}

func (m *MultiPresenter[P]) ShowNotification(ctx context.Context, payload P) {
	m.each(ctx, "notification", func(p Presenter[P]) { p.ShowNotification(ctx, payload) })
}

func (m *MultiPresenter[P]) each(ctx context.Context, slot string, call func(Presenter[P])) {
	for i, p := range m.presenters {
		if r := recoverCall(func() { call(p) }); r != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "presenter panicked",
				logger.Component("delivery"),
				logger.Slot(slot),
				slog.Int("presenter_index", i),
				logger.Panic(r),
			)
		}
	}
}

// recoverCall runs fn and returns the recovered panic value, if any.
func recoverCall(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
