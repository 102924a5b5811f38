package loop

import (
	"log/slog"
	"slices"
	"time"
)

// Manual is a deterministic Scheduler driven by the caller on virtual time.
// It is not safe for concurrent use.
type Manual struct {
	logger *slog.Logger
	now    time.Time
	queue  []func()
	timers []*manualTimer
	seq    uint64
}

// NewManual creates a manual scheduler. Virtual time starts at the Unix epoch
// unless WithStart is given.
func NewManual(opts ...Option) *Manual {
	o := newOptions(opts)
	return &Manual{
		logger: o.logger,
		now:    o.start,
	}
}

func (m *Manual) Defer(fn func()) {
	if fn != nil {
		m.queue = append(m.queue, fn)
	}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(max(d, 0)), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Now() time.Time {
	return m.now
}

// Drain runs queued tasks, including the ones they defer, until the queue is
// empty. It returns the number of tasks executed. Timers are not fired.
func (m *Manual) Drain() int {
	n := 0
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		safeRun(m.logger, fn)
		n++
	}
	return n
}

// Advance drains the queue, then moves virtual time forward by d. Every timer
// that falls due is fired at its own deadline, earliest first, and the queue
// is drained after each one.
func (m *Manual) Advance(d time.Duration) {
	m.Drain()
	target := m.now.Add(d)
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		m.remove(t)
		m.Defer(t.fn)
		m.Drain()
	}
	m.now = target
}

// Pending reports queued tasks and armed timers.
func (m *Manual) Pending() (tasks, timers int) {
	return len(m.queue), len(m.timers)
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) remove(t *manualTimer) bool {
	i := slices.Index(m.timers, t)
	if i < 0 {
		return false
	}
	m.timers = slices.Delete(m.timers, i, i+1)
	return true
}

type manualTimer struct {
	m   *Manual
	at  time.Time
	seq uint64
	fn  func()
}

func (t *manualTimer) Stop() bool {
	return t.m.remove(t)
}
