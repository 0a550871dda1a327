// Package multiplex fans decoded market-data updates out to per-consumer
// bounded channels, registered by (channel-kind, symbol). It never blocks
// its producer: a full consumer queue drops the newest item and counts it.
package multiplex

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// defaultBufferSize is the bounded queue capacity per subscription.
const defaultBufferSize = 1000

// Stats are the delivered/dropped counters for one Subscription.
type Stats struct {
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// Delivered returns the number of items successfully enqueued.
func (s *Stats) Delivered() uint64 { return s.delivered.Load() }

// Dropped returns the number of items discarded because the queue was full.
func (s *Stats) Dropped() uint64 { return s.dropped.Load() }

// DropRate returns Dropped/(Delivered+Dropped), or 0 if nothing has been
// produced yet.
func (s *Stats) DropRate() float64 {
	d := s.delivered.Load()
	dr := s.dropped.Load()
	total := d + dr
	if total == 0 {
		return 0
	}
	return float64(dr) / float64(total)
}

// Subscription is the consumer-facing handle: a stable ID, a receive-only
// bounded channel of T, and a reference to its own delivery statistics.
type Subscription[T any] struct {
	ID    string
	items chan T
	stats *Stats
}

func newSubscription[T any](bufferSize int) *Subscription[T] {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Subscription[T]{
		ID:    uuid.NewString(),
		items: make(chan T, bufferSize),
		stats: &Stats{},
	}
}

// Items returns the receive side of the subscription's bounded channel.
func (s *Subscription[T]) Items() <-chan T { return s.items }

// Stats returns the subscription's live delivered/dropped counters.
func (s *Subscription[T]) Stats() *Stats { return s.stats }

// sender is the multiplexer's producer-side handle: it knows the symbol
// filter ("*" matches every symbol) and can attempt non-blocking delivery.
type sender[T any] struct {
	symbol string // "*" = all symbols
	sub    *Subscription[T]
}

func (s *sender[T]) matches(symbol string) bool {
	return s.symbol == "*" || s.symbol == symbol
}

// trySend attempts non-blocking delivery, updating delivered/dropped.
func (s *sender[T]) trySend(item T) {
	select {
	case s.sub.items <- item:
		s.sub.stats.delivered.Add(1)
	default:
		s.sub.stats.dropped.Add(1)
	}
}
