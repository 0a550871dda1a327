// Package channels validates and caches which (symbol, parameter)
// combinations have already been successfully subscribed, so the
// reconnect path can skip re-validating static channel parameters like
// book depth or OHLC interval before replaying a subscribe frame.
package channels

import (
	"fmt"
	"time"

	"github.com/mselser95/krakenmd/pkg/cache"
)

// ValidDepths are the book channel's allowed depth parameters.
var ValidDepths = map[int]bool{10: true, 25: true, 100: true, 500: true, 1000: true}

// ValidIntervals are the ohlc channel's allowed interval parameters, in
// minutes.
var ValidIntervals = map[int]bool{
	1: true, 5: true, 15: true, 30: true, 60: true,
	240: true, 1440: true, 10080: true, 21600: true,
}

// ValidateDepth reports whether depth is one of the provider's allowed
// book-channel depths.
func ValidateDepth(depth int) error {
	if !ValidDepths[depth] {
		return fmt.Errorf("channels: invalid book depth %d", depth)
	}
	return nil
}

// ValidateInterval reports whether interval is one of the provider's
// allowed ohlc-channel intervals.
func ValidateInterval(interval int) error {
	if !ValidIntervals[interval] {
		return fmt.Errorf("channels: invalid ohlc interval %d", interval)
	}
	return nil
}

// defaultTTL is how long a validated (symbol, parameter) pair is trusted
// without re-validation.
const defaultTTL = 24 * time.Hour

// ParamCache remembers which (symbol, depth) and (symbol, interval) pairs
// have already passed a successful subscribe round-trip, backed by the
// same ristretto cache used elsewhere for metadata lookups.
type ParamCache struct {
	cache cache.Cache
}

// NewParamCache wraps an existing cache.Cache. The caller owns its
// lifecycle (Close).
func NewParamCache(c cache.Cache) *ParamCache {
	return &ParamCache{cache: c}
}

func bookKey(symbol string, depth int) string {
	return fmt.Sprintf("book:%s:%d", symbol, depth)
}

func ohlcKey(symbol string, interval int) string {
	return fmt.Sprintf("ohlc:%s:%d", symbol, interval)
}

// MarkBookValidated records that (symbol, depth) has been accepted by the
// provider.
func (p *ParamCache) MarkBookValidated(symbol string, depth int) {
	p.cache.Set(bookKey(symbol, depth), true, defaultTTL)
}

// IsBookValidated reports whether (symbol, depth) was previously accepted.
func (p *ParamCache) IsBookValidated(symbol string, depth int) bool {
	_, ok := p.cache.Get(bookKey(symbol, depth))
	return ok
}

// MarkOHLCValidated records that (symbol, interval) has been accepted by
// the provider.
func (p *ParamCache) MarkOHLCValidated(symbol string, interval int) {
	p.cache.Set(ohlcKey(symbol, interval), true, defaultTTL)
}

// IsOHLCValidated reports whether (symbol, interval) was previously accepted.
func (p *ParamCache) IsOHLCValidated(symbol string, interval int) bool {
	_, ok := p.cache.Get(ohlcKey(symbol, interval))
	return ok
}
