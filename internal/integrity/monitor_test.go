package integrity

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	valid map[string]bool
}

func newFakeStore() *fakeStore { return &fakeStore{valid: make(map[string]bool)} }

func (f *fakeStore) IsValid(symbol string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid[symbol]
}

func (f *fakeStore) setValid(symbol string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid[symbol] = v
}

func (f *fakeStore) Symbols() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.valid))
	for s := range f.valid {
		out = append(out, s)
	}
	return out
}

func TestMonitor_TripsAfterConsecutiveFailures(t *testing.T) {
	store := newFakeStore()
	store.setValid("BTC/USD", false)

	var reconnects atomic.Int32
	m, err := New(Config{
		Store:                    store,
		ConsecutiveFailThreshold: 3,
		Reconnect: func(ctx context.Context) error {
			reconnects.Add(1)
			return nil
		},
	})
	require.NoError(t, err)

	m.Check(context.Background())
	require.False(t, m.Tripped())
	m.Check(context.Background())
	require.False(t, m.Tripped())
	m.Check(context.Background())
	require.True(t, m.Tripped())

	require.Equal(t, int32(1), reconnects.Load())
}

func TestMonitor_ValidCheckResetsStreak(t *testing.T) {
	store := newFakeStore()
	store.setValid("BTC/USD", false)

	var reconnects atomic.Int32
	m, err := New(Config{
		Store:                    store,
		ConsecutiveFailThreshold: 2,
		Reconnect:                func(ctx context.Context) error { reconnects.Add(1); return nil },
	})
	require.NoError(t, err)

	m.Check(context.Background())
	store.setValid("BTC/USD", true)
	m.Check(context.Background())
	store.setValid("BTC/USD", false)
	m.Check(context.Background())

	require.False(t, m.Tripped())
	require.Equal(t, int32(0), reconnects.Load())
}

func TestMonitor_ResetClearsTrippedState(t *testing.T) {
	store := newFakeStore()
	store.setValid("BTC/USD", false)

	m, err := New(Config{
		Store:                    store,
		ConsecutiveFailThreshold: 1,
		Reconnect:                func(ctx context.Context) error { return nil },
	})
	require.NoError(t, err)

	m.Check(context.Background())
	require.True(t, m.Tripped())

	m.Reset()
	require.False(t, m.Tripped())
}

func TestNew_RequiresStoreAndReconnect(t *testing.T) {
	_, err := New(Config{Reconnect: func(context.Context) error { return nil }})
	require.Error(t, err)

	_, err = New(Config{Store: newFakeStore()})
	require.Error(t, err)
}
