package types

import "time"

// Trade is a single executed trade delivered on the `trade` channel.
type Trade struct {
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	OrderType OrderType `json:"order_type"`
	Price     Number    `json:"price"`
	Qty       Number    `json:"qty"`
	TradeID   Number    `json:"trade_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TradeUpdate is the full inbound `trade` channel message.
type TradeUpdate struct {
	Type string  `json:"type"`
	Data []Trade `json:"data"`
}

// Ticker is the best-price summary delivered on the `ticker` channel.
type Ticker struct {
	Symbol    string    `json:"symbol"`
	BestBid   Number    `json:"bid"`
	BestBidQty Number   `json:"bid_qty"`
	BestAsk   Number    `json:"ask"`
	BestAskQty Number   `json:"ask_qty"`
	Last      Number    `json:"last"`
	Volume    Number    `json:"volume"`
	VWAP      Number    `json:"vwap"`
	Low       Number    `json:"low"`
	High      Number    `json:"high"`
	Change    Number    `json:"change"`
	ChangePct Number    `json:"change_pct"`
}

// TickerUpdate is the full inbound `ticker` channel message.
type TickerUpdate struct {
	Type string   `json:"type"`
	Data []Ticker `json:"data"`
}

// OHLC is a single open/high/low/close candle delivered on the `ohlc`
// channel.
type OHLC struct {
	Symbol   string    `json:"symbol"`
	Open     Number    `json:"open"`
	High     Number    `json:"high"`
	Low      Number    `json:"low"`
	Close    Number    `json:"close"`
	VWAP     Number    `json:"vwap"`
	Volume   Number    `json:"volume"`
	Count    Number    `json:"trades"`
	Interval int       `json:"interval"`
	Begin    time.Time `json:"interval_begin"`
}

// OHLCUpdate is the full inbound `ohlc` channel message.
type OHLCUpdate struct {
	Type string `json:"type"`
	Data []OHLC `json:"data"`
}
