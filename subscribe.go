package krakenmd

import (
	"fmt"

	"github.com/mselser95/krakenmd/internal/channels"
	"github.com/mselser95/krakenmd/internal/codec"
	"github.com/mselser95/krakenmd/internal/multiplex"
	"github.com/mselser95/krakenmd/pkg/types"
)

// SubscribeBook subscribes to the book channel for symbol at the given
// depth (one of 10/25/100/500/1000) and returns a bounded subscription of
// per-update deltas. The order book itself is available separately via
// GetOrderBook; this stream is for callers that want the raw deltas.
func (c *Client) SubscribeBook(symbol string, depth int) (*multiplex.Subscription[types.OrderbookDelta], error) {
	if c.params == nil || !c.params.IsBookValidated(symbol, depth) {
		if err := channels.ValidateDepth(depth); err != nil {
			return nil, err
		}
	}

	sub := c.mux.Book.Register(symbol, 0)
	if err := c.subscribe("book", symbol, codec.SubscribeOptions{Depth: depth},
		storedSubscription{channel: "book", symbol: symbol, depth: depth}); err != nil {
		c.mux.Book.Unregister(sub.ID)
		return nil, fmt.Errorf("subscribe book %s: %w", symbol, err)
	}
	if c.params != nil {
		c.params.MarkBookValidated(symbol, depth)
	}
	return sub, nil
}

// SubscribeTrades subscribes to the trade channel for symbol.
func (c *Client) SubscribeTrades(symbol string) (*multiplex.Subscription[types.Trade], error) {
	sub := c.mux.Trade.Register(symbol, 0)
	if err := c.subscribe("trade", symbol, codec.SubscribeOptions{},
		storedSubscription{channel: "trade", symbol: symbol}); err != nil {
		c.mux.Trade.Unregister(sub.ID)
		return nil, fmt.Errorf("subscribe trade %s: %w", symbol, err)
	}
	return sub, nil
}

// SubscribeTicker subscribes to the ticker channel for symbol.
func (c *Client) SubscribeTicker(symbol string) (*multiplex.Subscription[types.Ticker], error) {
	sub := c.mux.Ticker.Register(symbol, 0)
	if err := c.subscribe("ticker", symbol, codec.SubscribeOptions{},
		storedSubscription{channel: "ticker", symbol: symbol}); err != nil {
		c.mux.Ticker.Unregister(sub.ID)
		return nil, fmt.Errorf("subscribe ticker %s: %w", symbol, err)
	}
	return sub, nil
}

// SubscribeOHLC subscribes to the ohlc channel for symbol at the given
// interval in minutes (one of 1/5/15/30/60/240/1440/10080/21600).
func (c *Client) SubscribeOHLC(symbol string, interval int) (*multiplex.Subscription[types.OHLC], error) {
	if c.params == nil || !c.params.IsOHLCValidated(symbol, interval) {
		if err := channels.ValidateInterval(interval); err != nil {
			return nil, err
		}
	}

	sub := c.mux.OHLC.Register(symbol, 0)
	if err := c.subscribe("ohlc", symbol, codec.SubscribeOptions{Interval: interval},
		storedSubscription{channel: "ohlc", symbol: symbol, interval: interval}); err != nil {
		c.mux.OHLC.Unregister(sub.ID)
		return nil, fmt.Errorf("subscribe ohlc %s: %w", symbol, err)
	}
	if c.params != nil {
		c.params.MarkOHLCValidated(symbol, interval)
	}
	return sub, nil
}

// subscribePrivate subscribes to one of the three authenticated channels
// (balances, orders, executions) against the given registry, signing a
// fresh token for the subscribe frame itself. Inbound balances, orders and
// executions messages are not routed to these registries (the codec
// classifies them as unknown), so the returned subscription receives no
// items.
func (c *Client) subscribePrivate(channel string, registry *multiplex.Registry[multiplex.PrivateRecord]) (*multiplex.Subscription[multiplex.PrivateRecord], error) {
	token, err := c.privateToken()
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	sub := registry.Register("*", 0)
	if err := c.subscribe(channel, "*", codec.SubscribeOptions{Token: token},
		storedSubscription{channel: channel, symbol: "*", private: true}); err != nil {
		registry.Unregister(sub.ID)
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}
	return sub, nil
}

// SubscribeBalances subscribes to the authenticated balances channel.
func (c *Client) SubscribeBalances() (*multiplex.Subscription[multiplex.PrivateRecord], error) {
	return c.subscribePrivate("balances", c.mux.Balances)
}

// SubscribeOrders subscribes to the authenticated open-orders channel.
func (c *Client) SubscribeOrders() (*multiplex.Subscription[multiplex.PrivateRecord], error) {
	return c.subscribePrivate("orders", c.mux.Orders)
}

// SubscribeExecutions subscribes to the authenticated executions channel.
func (c *Client) SubscribeExecutions() (*multiplex.Subscription[multiplex.PrivateRecord], error) {
	return c.subscribePrivate("executions", c.mux.Executions)
}
