// Package commands builds signed add_order/cancel_order/cancel_all/
// amend_order request frames. Message construction, validation, and
// signing are in scope; strategy, portfolio accounting, and fill
// reconciliation are not.
package commands

import (
	"fmt"
	"math"

	"github.com/mselser95/krakenmd/pkg/types"
)

// AddOrderParams are the caller-supplied parameters for a new order.
type AddOrderParams struct {
	Symbol        string
	Side          types.Side
	OrderType     types.OrderType
	Qty           float64
	LimitPrice    float64 // required when OrderType is Limit
	TriggerPrice  float64 // optional, for stop/take-profit variants
	TimeInForce   string  // e.g. "GTC", "IOC", "GTD"; empty = provider default
	PostOnly      bool
	ReduceOnly    bool
	STP           string // self-trade-prevention policy
	ClientOrderID string
	Validate      bool // dry-run: provider validates without placing
}

// AmendOrderParams are the caller-supplied replacement fields for an
// existing resting order. A zero value for Qty or LimitPrice leaves that
// field unchanged.
type AmendOrderParams struct {
	OrderID    string
	Qty        float64
	LimitPrice float64
}

// roundingForTick mirrors the teacher's per-tick-size precision table:
// coarser ticks get fewer decimal places on the rounded price. Quantity is
// always rounded to 2 decimals. Only the tick sizes 0.1, 0.01, 0.001 and
// 0.0001 are recognized; any other tick size uses 2 price decimals.
func roundingForTick(tickSize float64) (qtyDecimals, priceDecimals int) {
	switch tickSize {
	case 0.1:
		return 2, 1
	case 0.01:
		return 2, 2
	case 0.001:
		return 2, 3
	case 0.0001:
		return 2, 4
	default:
		return 2, 2
	}
}

func roundTo(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}

// Validate checks AddOrderParams for internal consistency and rounds Qty
// and LimitPrice to the precision implied by tickSize. It mutates a copy
// and returns it; the receiver is left untouched.
func (p AddOrderParams) Validate(tickSize float64) (AddOrderParams, error) {
	if p.Symbol == "" {
		return p, fmt.Errorf("add_order: symbol is required")
	}
	if p.Qty <= 0 {
		return p, fmt.Errorf("add_order: qty must be positive, got %v", p.Qty)
	}
	if p.OrderType == types.OrderTypeLimit && p.LimitPrice <= 0 {
		return p, fmt.Errorf("add_order: limit_price must be positive for limit orders")
	}

	qtyDecimals, priceDecimals := roundingForTick(tickSize)
	p.Qty = roundTo(p.Qty, qtyDecimals)
	if p.LimitPrice > 0 {
		p.LimitPrice = roundTo(p.LimitPrice, priceDecimals)
	}
	if p.TriggerPrice > 0 {
		p.TriggerPrice = roundTo(p.TriggerPrice, priceDecimals)
	}

	return p, nil
}

// Validate checks AmendOrderParams for internal consistency.
func (p AmendOrderParams) Validate() error {
	if p.OrderID == "" {
		return fmt.Errorf("amend_order: order_id is required")
	}
	if p.Qty < 0 {
		return fmt.Errorf("amend_order: qty must not be negative")
	}
	if p.LimitPrice < 0 {
		return fmt.Errorf("amend_order: limit_price must not be negative")
	}
	return nil
}
