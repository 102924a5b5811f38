// Command toastdemo drives the transient event pipeline from the terminal.
//
// Each line on stdin is a command:
//
//	error <text>   raise an error message
//	info <text>    raise an info message
//	notify <text>  raise a notification shown as an animated overlay
//	tap            tap the visible overlay
//	dismiss        swipe the visible overlay away
//	bg | fg        move the consumer to the background or foreground
//	quit           exit
//
// With TOAST_SCRIPT set to a YAML file the commands are played from it
// instead of stdin. Configuration is read from the environment and an
// optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/delivery"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/loop"
	"github.com/dmitrymomot/toastkit/pkg/overlay"
	"github.com/dmitrymomot/toastkit/pkg/transient"
)

type appConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Script    string `env:"TOAST_SCRIPT"`

	Delivery delivery.Config
	Overlay  overlay.Config
}

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "toastdemo:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if err := errors.Join(cfg.Delivery.Validate(), cfg.Overlay.Validate()); err != nil {
		return err
	}

	var sc *script
	if cfg.Script != "" {
		s, err := loadScript(cfg.Script)
		if err != nil {
			return err
		}
		sc = s
	}

	log := logger.New(
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("service", "toastdemo")),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := newApp(ctx, cfg, out, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := app.loop.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		app.audit(gctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if sc != nil {
			return sc.play(gctx, app.handle)
		}
		return readCommands(gctx, in, app.handle)
	})

	err := g.Wait()
	app.close()
	return err
}

// app owns the pipeline. Everything except audit and handle's posting runs
// on the loop goroutine.
type app struct {
	loop       *loop.Loop
	model      *transient.Model[toast]
	slot       *overlay.Slot[toast]
	bridge     *delivery.Bridge[toast]
	stream     *delivery.StreamPresenter[toast]
	foreground atomic.Bool
	out        io.Writer
	log        *slog.Logger
}

func newApp(ctx context.Context, cfg appConfig, out io.Writer, log *slog.Logger) *app {
	a := &app{
		loop:   loop.New(loop.WithLogger(log)),
		stream: delivery.NewStreamPresenter[toast](16),
		out:    out,
		log:    log,
	}
	a.foreground.Store(true)
	a.model = transient.New[toast](a.loop, transient.WithLogger(log))

	a.slot = overlay.NewSlot(a.loop,
		overlay.WithConfig[toast](cfg.Overlay),
		overlay.WithSurface[toast](newTerminalSurface(out)),
		overlay.WithEasing[toast](overlay.EaseOutCubic),
		overlay.WithLogger[toast](log),
		overlay.WithTemplate(func(toast) overlay.Entry[toast] {
			return overlay.Entry[toast]{
				OnTap: func(v toast) { fmt.Fprintf(out, "\nopened %q\n", v.Title) },
			}
		}),
	)

	banner := delivery.PresenterFuncs[toast]{
		Error: func(_ context.Context, text string) { fmt.Fprintf(out, "\n[error] %s\n", text) },
		Info:  func(_ context.Context, text string) { fmt.Fprintf(out, "\n[info] %s\n", text) },
	}
	presenter := delivery.NewMultiPresenter(
		[]delivery.Presenter[toast]{overlay.NewPresenter[toast](banner, a.slot), a.stream},
		delivery.WithMultiPresenterLogger[toast](log),
	)
	a.bridge = delivery.NewBridge[toast](a.loop, a.model, presenter,
		delivery.WithConfig(cfg.Delivery),
		delivery.WithActive(a.foreground.Load),
		delivery.WithLogger(log),
		delivery.WithContext(ctx),
	)
	return a
}

// audit logs every delivered event from a stream subscription.
func (a *app) audit(ctx context.Context) {
	sub := a.stream.Subscribe(ctx)
	for ev := range sub.Receive() {
		text := ev.Text
		if ev.Slot == transient.SlotNotification {
			text = ev.Payload.Title
		}
		a.log.LogAttrs(ctx, slog.LevelDebug, "delivered",
			logger.Slot(ev.Slot.String()),
			slog.String("text", text),
			slog.Time("at", ev.At),
		)
	}
	if n := sub.Dropped(); n > 0 {
		a.log.LogAttrs(ctx, slog.LevelWarn, "audit dropped events", slog.Int("count", n))
	}
}

// handle posts c to the loop.
func (a *app) handle(c command) error {
	return a.loop.Do(func() { a.apply(c) })
}

func (a *app) apply(c command) {
	switch c.kind {
	case cmdError:
		a.model.RaiseError(c.arg)
	case cmdInfo:
		a.model.RaiseInfo(c.arg)
	case cmdNotify:
		a.model.RaiseNotification(toast{Title: c.arg})
	case cmdTap:
		a.slot.Tap()
	case cmdDismiss:
		a.slot.Dismiss()
	case cmdBackground:
		a.foreground.Store(false)
	case cmdForeground:
		a.foreground.Store(true)
		a.bridge.Recheck()
	case cmdHelp:
		fmt.Fprint(a.out, usage)
	}
}

// close runs after the loop has returned.
func (a *app) close() {
	a.slot.Close()
	a.bridge.Close()
	_ = a.stream.Close()
}
