// Package krakenmd is a client library for an exchange's real-time
// WebSocket market-data API (v2 JSON protocol): a long-lived, self-healing
// session that multiplexes market-data subscriptions, maintains a
// replicated order book with integrity checking, authenticates private
// channels and trading commands, and delivers parsed updates through
// bounded channels with explicit backpressure accounting.
package krakenmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mselser95/krakenmd/internal/auth"
	"github.com/mselser95/krakenmd/internal/channels"
	"github.com/mselser95/krakenmd/internal/codec"
	"github.com/mselser95/krakenmd/internal/commands"
	"github.com/mselser95/krakenmd/internal/events"
	"github.com/mselser95/krakenmd/internal/integrity"
	"github.com/mselser95/krakenmd/internal/multiplex"
	"github.com/mselser95/krakenmd/internal/orderbook"
	"github.com/mselser95/krakenmd/internal/wsconn"
	"github.com/mselser95/krakenmd/pkg/cache"
	"github.com/mselser95/krakenmd/pkg/krakenerr"
	"github.com/mselser95/krakenmd/pkg/types"
)

// Credentials are the API key and base64-encoded secret used to sign
// private-channel subscriptions and trading commands.
type Credentials = auth.Credentials

// Config configures a Client.
type Config struct {
	URL          string
	Credentials  *Credentials // nil disables private channels and commands
	DialTimeout  time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration
	BufferSize   int // passed to wsconn.Config.MessageBufferSize, which the manager does not read; subscriptions always get the default capacity of 1000

	ReconnectPolicy wsconn.ReconnectPolicy

	IntegrityEnabled                 bool
	IntegrityCheckInterval           time.Duration
	IntegrityConsecutiveFailThreshold int

	ChannelCache cache.Cache // optional; nil disables parameter caching, so depth/interval are validated on every subscribe and resubscribe

	Logger *zap.Logger
}

// storedSubscription replays one consumer subscription's intent after a
// reconnect: channel kind, symbol, and channel-specific parameters.
type storedSubscription struct {
	channel  string
	symbol   string
	depth    int
	interval int
	private  bool
}

// Client is the single entry point for a session: one WebSocket
// connection, one order-book store, one multiplexer, one event bus.
type Client struct {
	logger *zap.Logger

	conn   *wsconn.Manager
	bus    *events.Bus
	books  *orderbook.Store
	mux    *multiplex.Multiplexer
	params *channels.ParamCache

	signer  *auth.Signer
	builder *commands.Builder

	integrityMonitor *integrity.Monitor

	subs []storedSubscription
}

// New constructs a Client without connecting. Call Connect to open the
// session.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: url is required", krakenerr.ErrInvalidURL)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	bus := events.NewBus()

	c := &Client{
		logger: cfg.Logger,
		bus:    bus,
		books:  orderbook.NewStore(cfg.Logger),
		mux:    multiplex.New(),
	}

	if cfg.ChannelCache != nil {
		c.params = channels.NewParamCache(cfg.ChannelCache)
	}

	if cfg.Credentials != nil {
		c.signer = auth.NewSigner(*cfg.Credentials)
		c.builder = commands.NewBuilder(c.signer)
	} else {
		c.builder = commands.NewBuilder(nil)
	}

	c.conn = wsconn.New(wsconn.Config{
		URL:               cfg.URL,
		DialTimeout:       cfg.DialTimeout,
		PongTimeout:       cfg.PongTimeout,
		PingInterval:      cfg.PingInterval,
		Policy:            cfg.ReconnectPolicy,
		MessageBufferSize: cfg.BufferSize,
		Logger:            cfg.Logger,
	}, bus)
	c.conn.SetOnMessage(c.handleFrame)
	c.conn.SetResubscribe(c.resubscribeAll)
	c.conn.SetPingFunc(codec.BuildPing)

	if cfg.IntegrityEnabled {
		monitor, err := integrity.New(integrity.Config{
			Store:                    c.books,
			CheckInterval:            cfg.IntegrityCheckInterval,
			ConsecutiveFailThreshold: cfg.IntegrityConsecutiveFailThreshold,
			Reconnect:                func(ctx context.Context) error { return c.Reconnect(ctx) },
			Logger:                   cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build integrity monitor: %w", err)
		}
		c.integrityMonitor = monitor
	}

	return c, nil
}

// Connect opens the WebSocket session and starts the manager's read and
// heartbeat goroutines.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.conn.Start(ctx); err != nil {
		return err
	}
	if c.integrityMonitor != nil {
		go c.integrityMonitor.Run(ctx)
	}
	return nil
}

// Disconnect gracefully shuts the session down.
func (c *Client) Disconnect() error {
	return c.conn.Close()
}

// Reconnect closes the live connection so the manager's reconnect path
// redials and resubscribes; see wsconn.Manager.Reconnect for its limits.
func (c *Client) Reconnect(ctx context.Context) error {
	return c.conn.Reconnect(ctx)
}

// IsConnected reports whether the session currently holds a live connection.
func (c *Client) IsConnected() bool { return c.conn.IsConnected() }

// ConnectionState returns the manager's current lifecycle state.
func (c *Client) ConnectionState() wsconn.State { return c.conn.State() }

// SubscribeEvents returns the receive side of the lifecycle event stream.
// Only one subscriber is supported at a time.
func (c *Client) SubscribeEvents() <-chan events.Event { return c.bus.Subscribe() }

// GetOrderBook returns a point-in-time copy of symbol's replicated order
// book, or ok=false if no snapshot has been applied yet.
func (c *Client) GetOrderBook(symbol string) (*orderbook.Replica, bool) {
	return c.books.Get(symbol)
}

// IsOrderBookValid reports whether symbol's last checksummed update
// validated successfully.
func (c *Client) IsOrderBookValid(symbol string) bool {
	return c.books.IsValid(symbol)
}

// handleFrame is the manager's single inbound-message sink: parse, apply
// to the order book (if applicable), then fan out.
func (c *Client) handleFrame(frame []byte) {
	msg, err := codec.ParseInbound(frame)
	if err != nil {
		c.logger.Warn("discarding malformed frame", zap.Error(err))
		return
	}

	switch msg.Kind {
	case codec.KindStatus:
		c.logger.Info("session status",
			zap.String("system", msg.Status.System),
			zap.Uint64("connection_id", msg.Status.ConnectionID))

	case codec.KindHeartbeat:
		// no payload to act on

	case codec.KindPong:
		// round-trip latency accounting could hook in here via ReqID

	case codec.KindSubscriptionStatus:
		c.logObserveSubscriptionStatus(msg.SubscriptionStatus)

	case codec.KindBook:
		for _, delta := range msg.Orderbook.Data {
			if delta.Type == types.MessageTypeSnapshot {
				c.books.ApplySnapshot(delta)
			} else {
				c.books.ApplyUpdate(delta)
			}
		}
		c.mux.PublishBook(msg.Orderbook)

	case codec.KindTrade:
		c.mux.PublishTrade(msg.Trade)

	case codec.KindTicker:
		c.mux.PublishTicker(msg.Ticker)

	case codec.KindOHLC:
		c.mux.PublishOHLC(msg.OHLC)

	case codec.KindUnknown:
		c.logger.Debug("unknown message", zap.ByteString("raw", msg.Raw))
	}
}

func (c *Client) logObserveSubscriptionStatus(status *types.SubscriptionStatus) {
	if status.Success {
		c.logger.Info("subscription acknowledged",
			zap.String("channel", status.Channel), zap.String("symbol", status.Symbol))
		return
	}

	parsed := codec.ParseError(status.Error)
	fields := []zap.Field{
		zap.String("channel", status.Channel),
		zap.String("symbol", status.Symbol),
		zap.String("error", status.Error),
	}
	switch {
	case parsed.InvalidPair():
		c.logger.Error("subscription rejected: invalid pair", fields...)
	case parsed.RateLimited():
		c.logger.Warn("subscription rejected: rate limited", fields...)
	case parsed.Retryable():
		c.logger.Warn("subscription rejected: retryable provider error", fields...)
	default:
		c.logger.Warn("subscription rejected", fields...)
	}
}

// resubscribeAll replays every stored subscription after a successful
// reconnect, flushing each symbol's order-book replica first so the next
// snapshot is authoritative.
func (c *Client) resubscribeAll(ctx context.Context) error {
	c.books.Reset()
	if c.integrityMonitor != nil {
		c.integrityMonitor.Reset()
	}

	for _, sub := range c.subs {
		opts := codec.SubscribeOptions{Depth: sub.depth, Interval: sub.interval}
		if sub.private {
			token, err := c.privateToken()
			if err != nil {
				c.logger.Error("cannot resubscribe to private channel without credentials",
					zap.String("channel", sub.channel))
				continue
			}
			opts.Token = token
		}

		if err := c.validateStoredParams(sub); err != nil {
			c.logger.Error("skipping resubscribe with invalid channel params",
				zap.String("channel", sub.channel), zap.String("symbol", sub.symbol), zap.Error(err))
			continue
		}

		frame, err := codec.BuildSubscribe(sub.channel, []string{sub.symbol}, opts)
		if err != nil {
			c.logger.Error("build resubscribe frame failed", zap.Error(err))
			continue
		}
		if err := c.conn.Send(frame); err != nil {
			return fmt.Errorf("resend subscription for %s/%s: %w", sub.channel, sub.symbol, err)
		}
	}
	return nil
}

// validateStoredParams re-checks a stored subscription's channel-specific
// parameters before replaying it on reconnect, skipping the check when the
// param cache already recorded a successful round-trip for this exact
// (symbol, parameter) pair.
func (c *Client) validateStoredParams(sub storedSubscription) error {
	switch sub.channel {
	case "book":
		if c.params != nil && c.params.IsBookValidated(sub.symbol, sub.depth) {
			return nil
		}
		if err := channels.ValidateDepth(sub.depth); err != nil {
			return err
		}
		if c.params != nil {
			c.params.MarkBookValidated(sub.symbol, sub.depth)
		}
	case "ohlc":
		if c.params != nil && c.params.IsOHLCValidated(sub.symbol, sub.interval) {
			return nil
		}
		if err := channels.ValidateInterval(sub.interval); err != nil {
			return err
		}
		if c.params != nil {
			c.params.MarkOHLCValidated(sub.symbol, sub.interval)
		}
	}
	return nil
}

func (c *Client) privateToken() (string, error) {
	if c.signer == nil {
		return "", fmt.Errorf("%w: no credentials configured", krakenerr.ErrAuthentication)
	}
	return c.signer.Sign(uint64(time.Now().UnixNano()))
}

func (c *Client) subscribe(channel, symbol string, opts codec.SubscribeOptions, stored storedSubscription) error {
	frame, err := codec.BuildSubscribe(channel, []string{symbol}, opts)
	if err != nil {
		return err
	}
	if err := c.conn.Send(frame); err != nil {
		return err
	}
	c.subs = append(c.subs, stored)
	return nil
}
