// Package events provides the fan-out bus delivering state-change
// notifications to any number of independent subscribers.
package events

import (
	"context"
	"errors"
	"sync"

	"commandcenter/internal/models"
)

// DefaultCapacity is the per-subscription buffer size used when NewBus is
// given a non-positive capacity.
const DefaultCapacity = 256

// ErrClosed is returned by Next after a subscription has been closed.
var ErrClosed = errors.New("subscription closed")

// Bus broadcasts ServerEvents to all attached subscriptions. Publishing never
// blocks: a subscriber that falls behind loses its own oldest buffered events
// and is told how many it missed, while other subscribers are unaffected.
type Bus struct {
	capacity int
	mu       sync.RWMutex
	subs     map[*Subscription]struct{}
}

// NewBus creates a bus whose subscriptions each buffer up to capacity events.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		capacity: capacity,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Publish delivers the event to every current subscription. It never blocks
// and is a no-op with zero subscribers.
func (b *Bus) Publish(event models.ServerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		sub.push(event)
	}
}

// Subscribe attaches a new subscription receiving every event published after
// this call. The caller must Close it when done.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{
		bus:   b,
		ring:  make([]models.ServerEvent, b.capacity),
		ready: make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// SubscriberCount returns the number of attached subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Subscription is one subscriber's private ordered view of the event stream,
// backed by a bounded ring buffer.
type Subscription struct {
	bus *Bus

	mu     sync.Mutex
	ring   []models.ServerEvent
	start  int
	count  int
	missed uint64
	closed bool
	ready  chan struct{}
}

func (s *Subscription) push(event models.ServerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.count == len(s.ring) {
		// Overwrite the oldest pending event.
		s.ring[s.start] = event
		s.start = (s.start + 1) % len(s.ring)
		s.missed++
	} else {
		s.ring[(s.start+s.count)%len(s.ring)] = event
		s.count++
	}

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next blocks until an event is available, the context is done, or the
// subscription is closed. The second return value is the number of events
// this subscriber missed since its previous read; it is non-zero only after
// the subscriber fell behind the buffer capacity.
func (s *Subscription) Next(ctx context.Context) (models.ServerEvent, uint64, error) {
	for {
		s.mu.Lock()
		if s.count > 0 {
			event := s.ring[s.start]
			s.ring[s.start] = models.ServerEvent{}
			s.start = (s.start + 1) % len(s.ring)
			s.count--
			missed := s.missed
			s.missed = 0
			s.mu.Unlock()
			return event, missed, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return models.ServerEvent{}, 0, ErrClosed
		}

		select {
		case <-ctx.Done():
			return models.ServerEvent{}, 0, ctx.Err()
		case <-s.ready:
		}
	}
}

// Close detaches the subscription from the bus. Pending buffered events can
// still be drained with Next before it reports ErrClosed.
func (s *Subscription) Close() {
	s.bus.remove(s)

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ready)
	}
	s.mu.Unlock()
}
