// Package types holds the wire-level value types shared by the codec,
// order-book replica, and subscription multiplexer.
package types

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Number decodes a JSON field that the exchange may encode as either a
// native JSON number or a numeric string. It always marshals back out as a
// JSON number.
type Number float64

// UnmarshalJSON accepts a JSON number, a quoted numeric string, or null
// (treated as zero).
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal numeric string: %w", err)
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse numeric string %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshal numeric literal: %w", err)
	}
	*n = Number(f)
	return nil
}

// MarshalJSON always emits a JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 { return float64(n) }

// String formats the number using the minimal decimal representation.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Side is the direction of a trade or order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType distinguishes market vs. limit orders.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// MessageType distinguishes a full replacement from an incremental delta.
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeUpdate   MessageType = "update"
)
