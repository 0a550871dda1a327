package krakenmd

import "github.com/mselser95/krakenmd/internal/commands"

// AddOrderParams mirrors internal/commands.AddOrderParams at the package
// boundary so callers never import an internal package directly.
type AddOrderParams = commands.AddOrderParams

// AmendOrderParams mirrors internal/commands.AmendOrderParams.
type AmendOrderParams = commands.AmendOrderParams

// AddOrder signs and sends an add_order command. tickSize determines the
// decimal precision the limit and trigger prices are rounded to before
// signing; the quantity is always rounded to 2 decimals.
func (c *Client) AddOrder(params AddOrderParams, tickSize float64) error {
	frame, err := c.builder.AddOrder(params, tickSize)
	if err != nil {
		return err
	}
	return c.conn.Send(frame)
}

// CancelOrder signs and sends a cancel_order command for orderID.
func (c *Client) CancelOrder(orderID string) error {
	frame, err := c.builder.CancelOrder(orderID)
	if err != nil {
		return err
	}
	return c.conn.Send(frame)
}

// CancelAll signs and sends a cancel_all command, canceling every resting
// order on the account.
func (c *Client) CancelAll() error {
	frame, err := c.builder.CancelAll()
	if err != nil {
		return err
	}
	return c.conn.Send(frame)
}

// AmendOrder signs and sends an amend_order command.
func (c *Client) AmendOrder(params AmendOrderParams) error {
	frame, err := c.builder.AmendOrder(params)
	if err != nil {
		return err
	}
	return c.conn.Send(frame)
}
