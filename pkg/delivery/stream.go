package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/transient"
)

// Event is one delivery as seen by a stream subscriber.
type Event[P any] struct {
	Slot    transient.Slot
	Text    string
	Payload P
	At      time.Time
}

// StreamPresenter publishes every delivered event to channel subscribers,
// for transports such as SSE or WebSocket that live on other goroutines.
// Slow subscribers lose events instead of blocking delivery.
// All methods are safe for concurrent use.
type StreamPresenter[P any] struct {
	mu          sync.RWMutex
	subscribers map[*Subscription[P]]struct{}
	bufferSize  int
	closed      bool
	now         func() time.Time
}

// NewStreamPresenter creates a stream presenter. Each subscriber gets a
// channel buffer of bufferSize events, at least 1.
func NewStreamPresenter[P any](bufferSize int) *StreamPresenter[P] {
	return &StreamPresenter[P]{
		subscribers: make(map[*Subscription[P]]struct{}),
		bufferSize:  max(bufferSize, 1),
		now:         time.Now,
	}
}

// Subscription receives events from a StreamPresenter.
type Subscription[P any] struct {
	owner   *StreamPresenter[P]
	ch      chan Event[P]
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	dropped int
}

// Receive returns the event channel. It is closed by Close.
func (s *Subscription[P]) Receive() <-chan Event[P] {
	return s.ch
}

// Dropped reports how many events were lost because the buffer was full.
func (s *Subscription[P]) Dropped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// Close closes the channel and unsubscribes. Idempotent.
func (s *Subscription[P]) Close() error {
	s.close()
	s.owner.remove(s)
	return nil
}

func (s *Subscription[P]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		close(s.done)
		s.closed = true
	}
}

func (s *Subscription[P]) send(e Event[P]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- e:
	default:
		s.dropped++
	}
}

// Subscribe registers a subscriber that is removed when ctx is cancelled.
// After Close it returns an already closed subscription.
func (p *StreamPresenter[P]) Subscribe(ctx context.Context) *Subscription[P] {
	sub := &Subscription[P]{
		owner: p,
		ch:    make(chan Event[P], p.bufferSize),
		done:  make(chan struct{}),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		sub.close()
		return sub
	}
	p.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.done:
			}
		}()
	}
	return sub
}

func (p *StreamPresenter[P]) ShowError(_ context.Context, text string) {
	p.publish(Event[P]{Slot: transient.SlotError, Text: text})
}

func (p *StreamPresenter[P]) ShowInfo(_ context.Context, text string) {
	p.publish(Event[P]{Slot: transient.SlotInfo, Text: text})
}

func (p *StreamPresenter[P]) ShowNotification(_ context.Context, payload P) {
	p.publish(Event[P]{Slot: transient.SlotNotification, Payload: payload})
}

// Close closes every subscription. Safe to call more than once.
func (p *StreamPresenter[P]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for sub := range p.subscribers {
		sub.close()
	}
	clear(p.subscribers)
	p.mu.Unlock()
	return nil
}

func (p *StreamPresenter[P]) publish(e Event[P]) {
	e.At = p.now()

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	for sub := range p.subscribers {
		sub.send(e)
	}
}

// Subscribers reports the number of open subscriptions.
func (p *StreamPresenter[P]) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}

func (p *StreamPresenter[P]) remove(sub *Subscription[P]) {
	p.mu.Lock()
	delete(p.subscribers, sub)
	p.mu.Unlock()
}
