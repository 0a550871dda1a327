package orderbook

import "sort"

// price is a total-ordering wrapper over the wire's binary float prices.
// Containment uses Go's native float64 equality (bit-for-bit for the
// identical literal the exchange re-sends on every delta); iteration order
// uses numeric comparison. A fixed-point decimal keyed by unscaled integer
// would sidestep float corner cases entirely and is the natural next step
// for a production variant.
type price = float64

// sortedAscending returns the keys of levels in ascending price order.
func sortedAscending(levels map[price]float64) []price {
	keys := make([]price, 0, len(levels))
	for p := range levels {
		keys = append(keys, p)
	}
	sort.Float64s(keys)
	return keys
}

// sortedDescending returns the keys of levels in descending price order.
func sortedDescending(levels map[price]float64) []price {
	keys := sortedAscending(levels)
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}
