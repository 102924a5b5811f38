package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/transient"
)

// Policy decides what happens to an event whose consumer is not active when
// its delivery task runs.
type Policy uint8

const (
	// PolicyRetry keeps the event and checks again every RetryInterval.
	PolicyRetry Policy = iota
	// PolicyHold keeps the event until the next dispatch or Recheck.
	PolicyHold
	// PolicyDrop clears the event without delivering it.
	PolicyDrop
)

func (p Policy) String() string {
	switch p {
	case PolicyRetry:
		return "retry"
	case PolicyHold:
		return "hold"
	case PolicyDrop:
		return "drop"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy converts "retry", "hold" or "drop" into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "retry":
		return PolicyRetry, nil
	case "hold":
		return PolicyHold, nil
	case "drop":
		return PolicyDrop, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Precedence is the order in which slots raised together are delivered.
type Precedence []transient.Slot

// DefaultPrecedence delivers errors before info before notifications.
func DefaultPrecedence() Precedence {
	return Precedence(transient.Slots())
}

// ParsePrecedence reads a comma separated list of slot names. Slots that are
// not listed keep their default relative order after the listed ones.
func ParsePrecedence(list string) (Precedence, error) {
	var out Precedence
	seen := make(map[transient.Slot]bool)
	for part := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		slot, err := transient.ParseSlot(part)
		if err != nil {
			return nil, errors.Join(ErrInvalidPrecedence, err)
		}
		if seen[slot] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidPrecedence, slot)
		}
		seen[slot] = true
		out = append(out, slot)
	}
	for _, slot := range transient.Slots() {
		if !seen[slot] {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (p *Precedence) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecedence(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Precedence) String() string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.String()
	}
	return strings.Join(names, ",")
}

// Config holds the delivery knobs. All fields have documented defaults and
// can be loaded from the environment with pkg/config.
type Config struct {
	Precedence     Precedence    `env:"TRANSIENT_PRECEDENCE" envDefault:"error,info,notification"`
	InactivePolicy Policy        `env:"TRANSIENT_INACTIVE_POLICY" envDefault:"retry"`
	RetryInterval  time.Duration `env:"TRANSIENT_RETRY_INTERVAL" envDefault:"250ms"`
}

// DefaultRetryInterval is used when Config.RetryInterval is not positive.
const DefaultRetryInterval = 250 * time.Millisecond

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Precedence:     DefaultPrecedence(),
		InactivePolicy: PolicyRetry,
		RetryInterval:  DefaultRetryInterval,
	}
}

// Validate reports configuration that cannot be used as is.
func (c Config) Validate() error {
	if c.InactivePolicy > PolicyDrop {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.InactivePolicy)
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("%w: negative retry interval %s", ErrInvalidConfig, c.RetryInterval)
	}
	seen := make(map[transient.Slot]bool)
	for _, s := range c.Precedence {
		if !s.Valid() || seen[s] {
			return fmt.Errorf("%w: precedence %v", ErrInvalidConfig, c.Precedence)
		}
		seen[s] = true
	}
	return nil
}

// normalized fills zero values with defaults and completes the precedence list.
func (c Config) normalized() Config {
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	order := make(Precedence, 0, len(transient.Slots()))
	seen := make(map[transient.Slot]bool)
	for _, s := range c.Precedence {
		if s.Valid() && !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}
	for _, s := range transient.Slots() {
		if !seen[s] {
			order = append(order, s)
		}
	}
	c.Precedence = order
	return c
}
