// Package orderbook replicates a provider order book from snapshot/delta
// messages and exposes price-ordered derived queries and a position-
// sensitive checksum for integrity checking.
package orderbook

import (
	"time"

	"github.com/mselser95/krakenmd/pkg/types"
)

// Replica is one symbol's locally-maintained order book. It is not
// internally synchronized; the Store that owns a Replica serializes all
// access to it under a single RWMutex, matching the "one writer, many
// readers" model of the rest of the client.
type Replica struct {
	Symbol        string
	Bids          map[price]float64 // price -> qty, best = max key
	Asks          map[price]float64 // price -> qty, best = min key
	Sequence      uint64
	LastChecksum  uint32
	ChecksumValid bool
	Timestamp     time.Time
}

// newReplica returns a freshly emptied replica for symbol.
func newReplica(symbol string) *Replica {
	return &Replica{
		Symbol: symbol,
		Bids:   make(map[price]float64),
		Asks:   make(map[price]float64),
	}
}

// Apply merges a single delta into the replica. A zero quantity removes
// the price level; any other quantity sets (inserts or replaces) it. The
// sequence counter always advances, even for an empty delta, since the
// exchange may send a heartbeat-only update; the timestamp is updated
// whenever the delta carries a non-zero one.
// When the delta carries a nonzero checksum, the replica's locally
// computed checksum is compared against it and ChecksumValid/LastChecksum
// are updated; a zero checksum leaves the prior validity outcome in place.
func (r *Replica) Apply(delta types.OrderbookDelta) {
	applySide(r.Bids, delta.Bids)
	applySide(r.Asks, delta.Asks)

	r.Sequence++
	if !delta.Timestamp.IsZero() {
		r.Timestamp = delta.Timestamp
	}

	if delta.Checksum != 0 {
		local := computeChecksum(r.Bids, r.Asks)
		r.LastChecksum = delta.Checksum
		r.ChecksumValid = local == delta.Checksum
	}
}

func applySide(side map[price]float64, levels []types.PriceLevel) {
	for _, lvl := range levels {
		p := lvl.Price.Float64()
		qty := lvl.Qty.Float64()
		if qty == 0 {
			delete(side, p)
			continue
		}
		side[p] = qty
	}
}

// Replace discards all resting levels and then applies delta, as happens
// when a fresh snapshot arrives. Sequence, checksum state, and timestamp
// are reset along with the book.
func (r *Replica) Replace(delta types.OrderbookDelta) {
	r.Bids = make(map[price]float64, len(delta.Bids))
	r.Asks = make(map[price]float64, len(delta.Asks))
	r.Sequence = 0
	r.LastChecksum = 0
	r.ChecksumValid = false
	r.Timestamp = time.Time{}
	r.Apply(delta)
}

// Clone returns a deep copy safe to hand to a caller outside the Store's
// lock.
func (r *Replica) Clone() *Replica {
	bids := make(map[price]float64, len(r.Bids))
	for p, q := range r.Bids {
		bids[p] = q
	}
	asks := make(map[price]float64, len(r.Asks))
	for p, q := range r.Asks {
		asks[p] = q
	}
	return &Replica{
		Symbol:        r.Symbol,
		Bids:          bids,
		Asks:          asks,
		Sequence:      r.Sequence,
		LastChecksum:  r.LastChecksum,
		ChecksumValid: r.ChecksumValid,
		Timestamp:     r.Timestamp,
	}
}

// BestBid returns the highest resting bid price and its quantity.
func (r *Replica) BestBid() (p, qty float64, ok bool) {
	keys := sortedDescending(r.Bids)
	if len(keys) == 0 {
		return 0, 0, false
	}
	return keys[0], r.Bids[keys[0]], true
}

// BestAsk returns the lowest resting ask price and its quantity.
func (r *Replica) BestAsk() (p, qty float64, ok bool) {
	keys := sortedAscending(r.Asks)
	if len(keys) == 0 {
		return 0, 0, false
	}
	return keys[0], r.Asks[keys[0]], true
}

// Spread returns best-ask minus best-bid. ok is false unless both sides
// have at least one resting level.
func (r *Replica) Spread() (spread float64, ok bool) {
	bid, _, bidOK := r.BestBid()
	ask, _, askOK := r.BestAsk()
	if !bidOK || !askOK {
		return 0, false
	}
	return ask - bid, true
}

// Mid returns the midpoint between best bid and best ask.
func (r *Replica) Mid() (mid float64, ok bool) {
	bid, _, bidOK := r.BestBid()
	ask, _, askOK := r.BestAsk()
	if !bidOK || !askOK {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// Level is a single (price, quantity) point in a derived query result.
type Level struct {
	Price float64
	Qty   float64
}

// TopBids returns up to n of the highest resting bids, best first.
func (r *Replica) TopBids(n int) []Level {
	return topLevels(r.Bids, sortedDescending(r.Bids), n)
}

// TopAsks returns up to n of the lowest resting asks, best first.
func (r *Replica) TopAsks(n int) []Level {
	return topLevels(r.Asks, sortedAscending(r.Asks), n)
}

func topLevels(side map[price]float64, keys []price, n int) []Level {
	if n > len(keys) {
		n = len(keys)
	}
	out := make([]Level, n)
	for i := 0; i < n; i++ {
		out[i] = Level{Price: keys[i], Qty: side[keys[i]]}
	}
	return out
}

// TotalBidVolume sums quantity across every resting bid.
func (r *Replica) TotalBidVolume() float64 { return totalVolume(r.Bids) }

// TotalAskVolume sums quantity across every resting ask.
func (r *Replica) TotalAskVolume() float64 { return totalVolume(r.Asks) }

func totalVolume(side map[price]float64) float64 {
	var total float64
	for _, qty := range side {
		total += qty
	}
	return total
}
