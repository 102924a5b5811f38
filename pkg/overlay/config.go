package overlay

import (
	"fmt"
	"time"
)

const (
	DefaultAnimationDuration = 400 * time.Millisecond
	DefaultDismissAfter      = 5 * time.Second
	DefaultFrameInterval     = 16 * time.Millisecond
)

// Config holds overlay timings. It can be loaded from the environment with
// pkg/config.
type Config struct {
	// AnimationDuration is the length of a full enter or exit tween.
	// Zero makes transitions instant.
	AnimationDuration time.Duration `env:"TOAST_ANIMATION_DURATION" envDefault:"400ms"`
	// DismissAfter is how long an entry stays visible. Zero disables auto-dismiss.
	DismissAfter time.Duration `env:"TOAST_DISMISS_AFTER" envDefault:"5s"`
	// FrameInterval is the tween tick period.
	FrameInterval time.Duration `env:"TOAST_FRAME_INTERVAL" envDefault:"16ms"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		AnimationDuration: DefaultAnimationDuration,
		DismissAfter:      DefaultDismissAfter,
		FrameInterval:     DefaultFrameInterval,
	}
}

// Validate rejects negative durations.
func (c Config) Validate() error {
	switch {
	case c.AnimationDuration < 0:
		return fmt.Errorf("%w: negative animation duration %s", ErrInvalidConfig, c.AnimationDuration)
	case c.DismissAfter < 0:
		return fmt.Errorf("%w: negative dismiss delay %s", ErrInvalidConfig, c.DismissAfter)
	case c.FrameInterval < 0:
		return fmt.Errorf("%w: negative frame interval %s", ErrInvalidConfig, c.FrameInterval)
	}
	return nil
}

func (c Config) normalized() Config {
	c.AnimationDuration = max(c.AnimationDuration, 0)
	c.DismissAfter = max(c.DismissAfter, 0)
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	return c
}
