package multiplex

import "sync"

// Registry holds every live Subscription[T] for one channel kind (book,
// trade, ticker, ohlc, or one of the private channels), keyed internally
// by subscription ID so Unregister is O(1).
type Registry[T any] struct {
	mu      sync.RWMutex
	senders map[string]*sender[T]
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{senders: make(map[string]*sender[T])}
}

// Register creates a new Subscription filtered to symbol ("*" for every
// symbol on this channel) and adds its producer-side sender to the
// registry. bufferSize <= 0 uses the default of 1000.
func (r *Registry[T]) Register(symbol string, bufferSize int) *Subscription[T] {
	sub := newSubscription[T](bufferSize)

	r.mu.Lock()
	r.senders[sub.ID] = &sender[T]{symbol: symbol, sub: sub}
	r.mu.Unlock()

	return sub
}

// Unregister removes a subscription so it no longer receives fan-out.
func (r *Registry[T]) Unregister(id string) {
	r.mu.Lock()
	delete(r.senders, id)
	r.mu.Unlock()
}

// Publish fans item out to every sender whose symbol filter matches, via
// non-blocking try-send. The registry lock is held only long enough to
// snapshot the current sender list; the sends themselves happen outside it
// so a slow consumer's channel send never blocks another consumer's.
func (r *Registry[T]) Publish(symbol string, item T) {
	r.mu.RLock()
	matched := make([]*sender[T], 0, len(r.senders))
	for _, s := range r.senders {
		if s.matches(symbol) {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range matched {
		s.trySend(item)
	}
}

// Len reports the number of currently registered subscriptions.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.senders)
}
