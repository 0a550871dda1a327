package orderbook

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mselser95/krakenmd/pkg/types"
)

// Store holds one Replica per subscribed symbol behind a single RWMutex.
// It is the component the root client keeps alive for the lifetime of a
// connection and flushes on every reconnect, mirroring the way the
// teacher's manager owned a single guarded map of per-token books.
type Store struct {
	mu       sync.RWMutex
	replicas map[string]*Replica
	logger   *zap.Logger
}

// NewStore builds an empty Store. A nil logger falls back to zap.NewNop.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		replicas: make(map[string]*Replica),
		logger:   logger,
	}
}

// ApplySnapshot installs delta as the full replacement book for its symbol,
// discarding any prior state. Called for every "snapshot" message.
func (s *Store) ApplySnapshot(delta types.OrderbookDelta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.replicas[delta.Symbol]
	if !ok {
		r = newReplica(delta.Symbol)
		s.replicas[delta.Symbol] = r
	}
	r.Replace(delta)

	s.logger.Debug("orderbook snapshot applied",
		zap.String("symbol", delta.Symbol),
		zap.Int("bids", len(r.Bids)),
		zap.Int("asks", len(r.Asks)),
	)
}

// ApplyUpdate merges delta into the existing replica for its symbol. If no
// snapshot has been seen yet for that symbol, the update is dropped and
// ApplyUpdate returns false, since the book would otherwise be partial and
// its checksum meaningless.
func (s *Store) ApplyUpdate(delta types.OrderbookDelta) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.replicas[delta.Symbol]
	if !ok {
		s.logger.Warn("orderbook update received before snapshot, dropping",
			zap.String("symbol", delta.Symbol))
		return false
	}
	r.Apply(delta)

	if delta.Checksum != 0 && !r.ChecksumValid {
		s.logger.Warn("orderbook checksum mismatch",
			zap.String("symbol", delta.Symbol),
			zap.Uint32("expected", delta.Checksum),
			zap.Uint64("sequence", r.Sequence),
		)
	}
	return true
}

// Get returns a deep copy of the replica for symbol, safe to read outside
// the Store's lock.
func (s *Store) Get(symbol string) (*Replica, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.replicas[symbol]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// IsValid reports whether symbol's replica's last checksum comparison
// succeeded. A symbol with no replica, or one that has never received a
// checksummed delta, is reported invalid.
func (s *Store) IsValid(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.replicas[symbol]
	if !ok {
		return false
	}
	return r.ChecksumValid
}

// Symbols returns every symbol currently tracked by the store.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.replicas))
	for sym := range s.replicas {
		out = append(out, sym)
	}
	return out
}

// Reset discards every replica. Called on reconnect, since a fresh
// connection requires a fresh snapshot before any update can be trusted.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replicas = make(map[string]*Replica)
	s.logger.Debug("orderbook store reset")
}

// Drop discards the replica for a single symbol, e.g. on unsubscribe.
func (s *Store) Drop(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.replicas, symbol)
}
