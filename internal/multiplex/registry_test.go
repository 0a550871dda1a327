package multiplex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_PublishDeliversToMatchingSymbol(t *testing.T) {
	r := NewRegistry[string]()
	sub := r.Register("BTC/USD", 10)

	r.Publish("BTC/USD", "hello")
	r.Publish("ETH/USD", "ignored")

	select {
	case item := <-sub.Items():
		require.Equal(t, "hello", item)
	default:
		t.Fatal("expected delivered item")
	}

	require.Equal(t, uint64(1), sub.Stats().Delivered())
}

func TestRegistry_WildcardMatchesEverySymbol(t *testing.T) {
	r := NewRegistry[string]()
	sub := r.Register("*", 10)

	r.Publish("BTC/USD", "a")
	r.Publish("ETH/USD", "b")

	require.Equal(t, uint64(2), sub.Stats().Delivered())
}

func TestRegistry_UnregisterStopsDelivery(t *testing.T) {
	r := NewRegistry[string]()
	sub := r.Register("BTC/USD", 10)
	r.Unregister(sub.ID)

	r.Publish("BTC/USD", "x")
	require.Equal(t, uint64(0), sub.Stats().Delivered())
}

func TestRegistry_BackpressureAccounting(t *testing.T) {
	r := NewRegistry[int]()
	sub := r.Register("BTC/USD", 3)

	for i := 0; i < 5; i++ {
		r.Publish("BTC/USD", i)
	}

	require.Equal(t, uint64(3), sub.Stats().Delivered())
	require.Equal(t, uint64(2), sub.Stats().Dropped())
	require.InDelta(t, 0.4, sub.Stats().DropRate(), 0.001)

	var got []int
	for i := 0; i < 3; i++ {
		got = append(got, <-sub.Items())
	}
	require.Equal(t, []int{0, 1, 2}, got)
}

func TestRegistry_ConsumerThatKeepsUpNeverDrops(t *testing.T) {
	r := NewRegistry[int]()
	sub := r.Register("BTC/USD", 2)

	for i := 0; i < 100; i++ {
		r.Publish("BTC/USD", i)
		<-sub.Items()
	}

	require.Equal(t, uint64(0), sub.Stats().Dropped())
}
