// Package codec parses inbound provider JSON frames into tagged Go values
// and serializes outbound subscribe/unsubscribe/ping requests. It never
// touches the network; it is exercised by feeding it raw bytes from
// internal/wsconn and handing its output to internal/multiplex and
// internal/orderbook.
package codec

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mselser95/krakenmd/pkg/errtaxonomy"
	"github.com/mselser95/krakenmd/pkg/krakenerr"
	"github.com/mselser95/krakenmd/pkg/types"
)

// Kind identifies which variant an inbound Message carries.
type Kind string

const (
	KindStatus             Kind = "status"
	KindHeartbeat          Kind = "heartbeat"
	KindPong               Kind = "pong"
	KindSubscriptionStatus Kind = "subscription_status"
	KindBook               Kind = "book"
	KindTrade              Kind = "trade"
	KindTicker             Kind = "ticker"
	KindOHLC               Kind = "ohlc"
	KindUnknown            Kind = "unknown"
)

// Message is the tagged union produced by ParseInbound. Only the field
// matching Kind is populated.
type Message struct {
	Kind Kind

	Status             *types.SystemStatus
	Heartbeat          *types.Heartbeat
	Pong               *types.Pong
	SubscriptionStatus *types.SubscriptionStatus
	Orderbook          *types.OrderbookUpdate
	Trade              *types.TradeUpdate
	Ticker             *types.TickerUpdate
	OHLC               *types.OHLCUpdate

	Raw []byte // populated for KindUnknown, and always the original bytes
}

// envelope is the superset of top-level fields any inbound frame may carry.
// Concrete payloads are re-unmarshaled into their typed form once the
// envelope reveals which one applies.
type envelope struct {
	Method  string `json:"method"`
	Channel string `json:"channel"`
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Symbol  string `json:"symbol"`
	Error   string `json:"error"`
	ReqID   int64  `json:"req_id"`
}

// ParseInbound classifies and decodes a single text frame. A frame that
// fails to even parse as a JSON object returns a wrapped
// krakenerr.ErrJSONMalformed; callers are expected to log it at warn and
// discard the frame rather than terminate the session.
func ParseInbound(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, fmt.Errorf("%w: %v", krakenerr.ErrJSONMalformed, err)
	}

	if env.Method != "" {
		return parseMethodMessage(env, raw)
	}
	return parseChannelMessage(env, raw)
}

func parseMethodMessage(env envelope, raw []byte) (Message, error) {
	switch env.Method {
	case "pong":
		var pong types.Pong
		if err := json.Unmarshal(raw, &pong); err != nil {
			return Message{}, fmt.Errorf("%w: pong: %v", krakenerr.ErrJSONMalformed, err)
		}
		return Message{Kind: KindPong, Pong: &pong, Raw: raw}, nil

	case "subscribe", "unsubscribe":
		status := types.SubscriptionStatus{
			Success: env.Success,
			Method:  env.Method,
			Channel: env.Channel,
			Symbol:  env.Symbol,
			Error:   env.Error,
		}
		return Message{Kind: KindSubscriptionStatus, SubscriptionStatus: &status, Raw: raw}, nil

	default:
		return Message{Kind: KindUnknown, Raw: raw}, nil
	}
}

func parseChannelMessage(env envelope, raw []byte) (Message, error) {
	switch env.Channel {
	case "status":
		var status types.SystemStatus
		if err := json.Unmarshal(raw, &status); err != nil {
			return Message{}, fmt.Errorf("%w: status: %v", krakenerr.ErrJSONMalformed, err)
		}
		return Message{Kind: KindStatus, Status: &status, Raw: raw}, nil

	case "heartbeat":
		return Message{Kind: KindHeartbeat, Heartbeat: &types.Heartbeat{}, Raw: raw}, nil

	case "book":
		update, err := parseOrderbookUpdate(raw)
		if err != nil {
			return Message{}, err
		}
		return Message{Kind: KindBook, Orderbook: update, Raw: raw}, nil

	case "trade":
		var update types.TradeUpdate
		if err := json.Unmarshal(raw, &update); err != nil {
			return Message{}, fmt.Errorf("%w: trade: %v", krakenerr.ErrJSONMalformed, err)
		}
		return Message{Kind: KindTrade, Trade: &update, Raw: raw}, nil

	case "ticker":
		var update types.TickerUpdate
		if err := json.Unmarshal(raw, &update); err != nil {
			return Message{}, fmt.Errorf("%w: ticker: %v", krakenerr.ErrJSONMalformed, err)
		}
		return Message{Kind: KindTicker, Ticker: &update, Raw: raw}, nil

	case "ohlc":
		var update types.OHLCUpdate
		if err := json.Unmarshal(raw, &update); err != nil {
			return Message{}, fmt.Errorf("%w: ohlc: %v", krakenerr.ErrJSONMalformed, err)
		}
		return Message{Kind: KindOHLC, OHLC: &update, Raw: raw}, nil

	default:
		return Message{Kind: KindUnknown, Raw: raw}, nil
	}
}

// parseOrderbookUpdate decodes a `book` channel message and stamps every
// contained delta with the message's top-level Type (snapshot or update),
// since OrderbookDelta.Type is not itself present per-delta on the wire.
func parseOrderbookUpdate(raw []byte) (*types.OrderbookUpdate, error) {
	var update types.OrderbookUpdate
	if err := json.Unmarshal(raw, &update); err != nil {
		return nil, fmt.Errorf("%w: book: %v", krakenerr.ErrJSONMalformed, err)
	}

	msgType := types.MessageTypeUpdate
	if update.Type == string(types.MessageTypeSnapshot) {
		msgType = types.MessageTypeSnapshot
	}
	for i := range update.Data {
		update.Data[i].Type = msgType
	}
	return &update, nil
}

// ParseError classifies a SubscriptionStatus's Error string via the
// provider error taxonomy. Call only when Error is non-empty.
func ParseError(raw string) errtaxonomy.ProviderError {
	return errtaxonomy.Parse(raw)
}
