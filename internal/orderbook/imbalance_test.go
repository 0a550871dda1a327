package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mselser95/krakenmd/pkg/types"
)

func TestReplica_ClassifyBullish(t *testing.T) {
	r := newReplica("BTC/USD")
	r.Apply(types.OrderbookDelta{
		Bids: []types.PriceLevel{level(100, 10)},
		Asks: []types.PriceLevel{level(101, 1)},
	})

	require.Equal(t, PressureBullish, r.Classify(10, 0.1))
}

func TestReplica_ClassifyBearish(t *testing.T) {
	r := newReplica("BTC/USD")
	r.Apply(types.OrderbookDelta{
		Bids: []types.PriceLevel{level(100, 1)},
		Asks: []types.PriceLevel{level(101, 10)},
	})

	require.Equal(t, PressureBearish, r.Classify(10, 0.1))
}

func TestReplica_ClassifyNeutralWhenBalanced(t *testing.T) {
	r := newReplica("BTC/USD")
	r.Apply(types.OrderbookDelta{
		Bids: []types.PriceLevel{level(100, 5)},
		Asks: []types.PriceLevel{level(101, 5)},
	})

	require.Equal(t, PressureNeutral, r.Classify(10, 0.1))
}

func TestReplica_ClassifyNeutralWhenEmpty(t *testing.T) {
	r := newReplica("BTC/USD")
	require.Equal(t, PressureNeutral, r.Classify(10, 0.1))
}

func TestReplica_ImbalanceUndefinedWhenBothSidesEmpty(t *testing.T) {
	r := newReplica("BTC/USD")
	_, ok := r.Imbalance(10)
	require.False(t, ok)
}
