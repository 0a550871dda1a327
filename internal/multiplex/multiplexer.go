package multiplex

import "github.com/mselser95/krakenmd/pkg/types"

// PrivateRecord is a generic envelope for the three private channels
// (balances/orders/executions), whose payload shapes are provider-defined
// and consumer-opaque as far as the multiplexer is concerned. Symbol/Token
// is the routing key equivalent to the public channels' symbol filter.
type PrivateRecord struct {
	Token string
	Data  interface{}
}

// Multiplexer owns one Registry per subscription channel kind. It is the
// single fan-out point the manager's inbound task feeds after the codec
// parses a frame and, for book updates, after the order-book replica has
// already applied the delta.
type Multiplexer struct {
	Book       *Registry[types.OrderbookDelta]
	Trade      *Registry[types.Trade]
	Ticker     *Registry[types.Ticker]
	OHLC       *Registry[types.OHLC]
	Balances   *Registry[PrivateRecord]
	Orders     *Registry[PrivateRecord]
	Executions *Registry[PrivateRecord]
}

// New builds a Multiplexer with all seven registries ready to accept
// registrations.
func New() *Multiplexer {
	return &Multiplexer{
		Book:       NewRegistry[types.OrderbookDelta](),
		Trade:      NewRegistry[types.Trade](),
		Ticker:     NewRegistry[types.Ticker](),
		OHLC:       NewRegistry[types.OHLC](),
		Balances:   NewRegistry[PrivateRecord](),
		Orders:     NewRegistry[PrivateRecord](),
		Executions: NewRegistry[PrivateRecord](),
	}
}

// PublishBook fans each per-symbol delta in update out to Book subscribers.
func (m *Multiplexer) PublishBook(update *types.OrderbookUpdate) {
	for _, delta := range update.Data {
		m.Book.Publish(delta.Symbol, delta)
	}
}

// PublishTrade fans each trade in update out to Trade subscribers.
func (m *Multiplexer) PublishTrade(update *types.TradeUpdate) {
	for _, t := range update.Data {
		m.Trade.Publish(t.Symbol, t)
	}
}

// PublishTicker fans each ticker in update out to Ticker subscribers.
func (m *Multiplexer) PublishTicker(update *types.TickerUpdate) {
	for _, t := range update.Data {
		m.Ticker.Publish(t.Symbol, t)
	}
}

// PublishOHLC fans each candle in update out to OHLC subscribers.
func (m *Multiplexer) PublishOHLC(update *types.OHLCUpdate) {
	for _, c := range update.Data {
		m.OHLC.Publish(c.Symbol, c)
	}
}
