package channels

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mselser95/krakenmd/pkg/cache"
)

// memCache is a minimal in-process cache.Cache used only to exercise
// ParamCache's key scheme without depending on ristretto's async Set.
type memCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMemCache() *memCache { return &memCache{items: make(map[string]interface{})} }

func (m *memCache) Get(key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *memCache) Set(key string, value interface{}, _ time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return true
}

func (m *memCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

func (m *memCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]interface{})
}

func (m *memCache) Close() {}

var _ cache.Cache = (*memCache)(nil)

func TestValidateDepth(t *testing.T) {
	require.NoError(t, ValidateDepth(100))
	require.Error(t, ValidateDepth(7))
}

func TestValidateInterval(t *testing.T) {
	require.NoError(t, ValidateInterval(240))
	require.Error(t, ValidateInterval(3))
}

func TestParamCache_BookRoundTrip(t *testing.T) {
	pc := NewParamCache(newMemCache())

	require.False(t, pc.IsBookValidated("BTC/USD", 10))
	pc.MarkBookValidated("BTC/USD", 10)
	require.True(t, pc.IsBookValidated("BTC/USD", 10))
	require.False(t, pc.IsBookValidated("BTC/USD", 25))
}

func TestParamCache_OHLCRoundTrip(t *testing.T) {
	pc := NewParamCache(newMemCache())

	require.False(t, pc.IsOHLCValidated("ETH/USD", 60))
	pc.MarkOHLCValidated("ETH/USD", 60)
	require.True(t, pc.IsOHLCValidated("ETH/USD", 60))
}
