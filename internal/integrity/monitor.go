// Package integrity watches the order-book replicas' checksum validity
// and triggers a manual reconnect once a watched book has failed its
// checksum for too many consecutive checks in a row. Adapted from the
// teacher's wallet-balance circuit breaker: an atomic tripped flag plus a
// mutex-guarded rolling per-symbol failure count, but the quantity under
// hysteresis is checksum validity instead of account balance.
package integrity

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Store is the subset of orderbook.Store the monitor depends on.
type Store interface {
	IsValid(symbol string) bool
	Symbols() []string
}

// ReconnectFunc triggers a manual reconnect of the session.
type ReconnectFunc func(ctx context.Context) error

// Config configures a Monitor.
type Config struct {
	Store                    Store
	CheckInterval            time.Duration
	ConsecutiveFailThreshold int // trip after this many consecutive invalid checks for one symbol
	Reconnect                ReconnectFunc
	Logger                   *zap.Logger
}

// Monitor periodically checks every tracked symbol's checksum validity and
// trips once any one symbol has been invalid for ConsecutiveFailThreshold
// consecutive checks.
type Monitor struct {
	store     Store
	interval  time.Duration
	threshold int
	reconnect ReconnectFunc
	logger    *zap.Logger

	tripped atomic.Bool

	mu          sync.Mutex
	consecutive map[string]int
}

// New builds a Monitor. A threshold below 1 is treated as 1.
func New(cfg Config) (*Monitor, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("integrity: store is required")
	}
	if cfg.Reconnect == nil {
		return nil, fmt.Errorf("integrity: reconnect callback is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	threshold := cfg.ConsecutiveFailThreshold
	if threshold < 1 {
		threshold = 1
	}

	return &Monitor{
		store:       cfg.Store,
		interval:    cfg.CheckInterval,
		threshold:   threshold,
		reconnect:   cfg.Reconnect,
		logger:      cfg.Logger,
		consecutive: make(map[string]int),
	}, nil
}

// Tripped reports whether the monitor has fired a reconnect and not yet
// been reset.
func (m *Monitor) Tripped() bool { return m.tripped.Load() }

// Reset clears the tripped flag and every symbol's consecutive-failure
// counter, called after a reconnect has completed and fresh snapshots are
// expected.
func (m *Monitor) Reset() {
	m.tripped.Store(false)

	m.mu.Lock()
	m.consecutive = make(map[string]int)
	m.mu.Unlock()

	IntegrityTripped.Set(0)
}

// Check runs a single pass over every tracked symbol. If any symbol's
// invalid-checksum streak reaches the threshold, it trips the monitor and
// invokes Reconnect.
func (m *Monitor) Check(ctx context.Context) {
	if m.tripped.Load() {
		return
	}

	for _, symbol := range m.store.Symbols() {
		m.mu.Lock()
		if m.store.IsValid(symbol) {
			m.consecutive[symbol] = 0
			m.mu.Unlock()
			continue
		}
		m.consecutive[symbol]++
		streak := m.consecutive[symbol]
		m.mu.Unlock()

		IntegrityConsecutiveFailures.WithLabelValues(symbol).Set(float64(streak))

		if streak >= m.threshold {
			m.trip(ctx, symbol, streak)
			return
		}
	}
}

func (m *Monitor) trip(ctx context.Context, symbol string, streak int) {
	if !m.tripped.CompareAndSwap(false, true) {
		return
	}

	IntegrityTripped.Set(1)
	IntegrityTripsTotal.Inc()
	m.logger.Warn("orderbook integrity check failed, forcing reconnect",
		zap.String("symbol", symbol), zap.Int("consecutive_failures", streak))

	if err := m.reconnect(ctx); err != nil {
		m.logger.Error("integrity-triggered reconnect failed", zap.Error(err))
	}
}

// Run ticks Check every interval until ctx is done. A non-positive
// interval defaults to 5 seconds.
func (m *Monitor) Run(ctx context.Context) {
	interval := m.interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
