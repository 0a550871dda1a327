package commands

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mselser95/krakenmd/internal/auth"
)

type request struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type addOrderRequestParams struct {
	Symbol        string  `json:"symbol"`
	Side          string  `json:"side"`
	OrderType     string  `json:"order_type"`
	Qty           float64 `json:"order_qty"`
	LimitPrice    float64 `json:"limit_price,omitempty"`
	TriggerPrice  float64 `json:"trigger_price,omitempty"`
	TimeInForce   string  `json:"time_in_force,omitempty"`
	PostOnly      bool    `json:"post_only,omitempty"`
	ReduceOnly    bool    `json:"reduce_only,omitempty"`
	STP           string  `json:"stp_type,omitempty"`
	ClientOrderID string  `json:"cl_ord_id,omitempty"`
	Validate      bool    `json:"validate,omitempty"`
	Token         string  `json:"token"`
}

type cancelOrderRequestParams struct {
	OrderID string `json:"order_id"`
	Token   string `json:"token"`
}

type cancelAllRequestParams struct {
	Token string `json:"token"`
}

type amendOrderRequestParams struct {
	OrderID    string  `json:"order_id"`
	Qty        float64 `json:"order_qty,omitempty"`
	LimitPrice float64 `json:"limit_price,omitempty"`
	Token      string  `json:"token"`
}

// Builder constructs signed command frames. One Builder is typically
// shared across every command a session issues, since it owns the single
// monotonic NonceSource the provider requires.
type Builder struct {
	signer *auth.Signer
	nonces *NonceSource
}

// NewBuilder creates a Builder over the given signer. A nil signer is
// accepted so that a client without trading credentials can still be
// constructed; building any command in that state returns an error.
func NewBuilder(signer *auth.Signer) *Builder {
	return &Builder{signer: signer, nonces: NewNonceSource()}
}

func (b *Builder) sign() (string, error) {
	if b.signer == nil {
		return "", fmt.Errorf("commands: no credentials configured for authenticated requests")
	}
	return b.signer.Sign(b.nonces.Next())
}

// AddOrder builds a signed add_order frame. tickSize parameterizes
// quantity/price rounding per Validate.
func (b *Builder) AddOrder(params AddOrderParams, tickSize float64) ([]byte, error) {
	params, err := params.Validate(tickSize)
	if err != nil {
		return nil, err
	}

	token, err := b.sign()
	if err != nil {
		return nil, err
	}

	req := request{
		Method: "add_order",
		Params: addOrderRequestParams{
			Symbol:        params.Symbol,
			Side:          string(params.Side),
			OrderType:     string(params.OrderType),
			Qty:           params.Qty,
			LimitPrice:    params.LimitPrice,
			TriggerPrice:  params.TriggerPrice,
			TimeInForce:   params.TimeInForce,
			PostOnly:      params.PostOnly,
			ReduceOnly:    params.ReduceOnly,
			STP:           params.STP,
			ClientOrderID: params.ClientOrderID,
			Validate:      params.Validate,
			Token:         token,
		},
	}
	return marshalRequest(req)
}

// CancelOrder builds a signed cancel_order frame.
func (b *Builder) CancelOrder(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, fmt.Errorf("cancel_order: order_id is required")
	}
	token, err := b.sign()
	if err != nil {
		return nil, err
	}
	req := request{Method: "cancel_order", Params: cancelOrderRequestParams{OrderID: orderID, Token: token}}
	return marshalRequest(req)
}

// CancelAll builds a signed cancel_all frame.
func (b *Builder) CancelAll() ([]byte, error) {
	token, err := b.sign()
	if err != nil {
		return nil, err
	}
	req := request{Method: "cancel_all", Params: cancelAllRequestParams{Token: token}}
	return marshalRequest(req)
}

// AmendOrder builds a signed amend_order frame.
func (b *Builder) AmendOrder(params AmendOrderParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	token, err := b.sign()
	if err != nil {
		return nil, err
	}
	req := request{
		Method: "amend_order",
		Params: amendOrderRequestParams{
			OrderID:    params.OrderID,
			Qty:        params.Qty,
			LimitPrice: params.LimitPrice,
			Token:      token,
		},
	}
	return marshalRequest(req)
}

func marshalRequest(req request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", req.Method, err)
	}
	return data, nil
}
