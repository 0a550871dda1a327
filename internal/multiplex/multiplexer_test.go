package multiplex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mselser95/krakenmd/pkg/types"
)

func TestMultiplexer_PublishBookRoutesBySymbol(t *testing.T) {
	m := New()
	sub := m.Book.Register("BTC/USD", 10)

	m.PublishBook(&types.OrderbookUpdate{
		Type: "update",
		Data: []types.OrderbookDelta{
			{Symbol: "BTC/USD"},
			{Symbol: "ETH/USD"},
		},
	})

	require.Equal(t, uint64(1), sub.Stats().Delivered())
}

func TestMultiplexer_PublishTrade(t *testing.T) {
	m := New()
	sub := m.Trade.Register("*", 10)

	m.PublishTrade(&types.TradeUpdate{Data: []types.Trade{{Symbol: "BTC/USD"}, {Symbol: "ETH/USD"}}})

	require.Equal(t, uint64(2), sub.Stats().Delivered())
}

func TestMultiplexer_PrivateChannelsAreIndependentRegistries(t *testing.T) {
	m := New()
	m.Orders.Register("token-a", 10)

	require.Equal(t, 1, m.Orders.Len())
	require.Equal(t, 0, m.Balances.Len())
	require.Equal(t, 0, m.Executions.Len())
}
