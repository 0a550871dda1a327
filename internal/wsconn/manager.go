// Package wsconn owns the single WebSocket connection to the exchange and
// drives its lifecycle: initial handshake, heartbeat, and transparent
// reconnect-with-backoff. It is deliberately ignorant of message
// semantics — inbound frames are handed to a caller-supplied sink and
// outbound frames are opaque byte slices — so that internal/codec,
// internal/multiplex, and the root client facade can own protocol
// meaning while this package owns only the transport state machine.
package wsconn

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mselser95/krakenmd/internal/events"
	"github.com/mselser95/krakenmd/pkg/krakenerr"
)

// maxFrameBytes caps the size of a single inbound message, per the
// provider's documented frame ceiling.
const maxFrameBytes = 16 << 20

// Config configures a Manager.
type Config struct {
	URL               string
	DialTimeout       time.Duration
	PongTimeout       time.Duration
	PingInterval      time.Duration
	Policy            ReconnectPolicy
	MessageBufferSize int
	Logger            *zap.Logger
}

// OnMessage is invoked once per inbound text frame, on the manager's own
// read goroutine. Implementations must not block meaningfully — this is
// on the single inbound-message task the whole session depends on.
type OnMessage func(frame []byte)

// ResubscribeFunc replays every stored subscription after a successful
// reconnect. It is called on the manager goroutine so the caller should
// enqueue writes and return promptly.
type ResubscribeFunc func(ctx context.Context) error

// PingFunc builds the application-level heartbeat frame for a given
// request ID. The exchange's v2 protocol answers a JSON ping with a JSON
// pong rather than a transport-level pong, so the manager defers the
// actual framing to the codec layer via this hook.
type PingFunc func(reqID int64) ([]byte, error)

// Manager owns one WebSocket connection and its reconnect loop.
type Manager struct {
	url    string
	logger *zap.Logger
	policy ReconnectPolicy
	config Config

	bus *events.Bus

	onMessage   OnMessage
	resubscribe ResubscribeFunc
	buildPing   PingFunc
	pingReqID   atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.RWMutex
	conn *websocket.Conn

	state       *stateCell
	shutdown    atomic.Bool
	lastPong    atomic.Int64
	connectedAt atomic.Int64
}

// New builds a Manager. onMessage and resubscribe may be set after
// construction via SetOnMessage/SetResubscribe, since the codec and
// multiplexer that produce them are typically wired after the manager
// itself is constructed.
func New(cfg Config, bus *events.Bus) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	return &Manager{
		url:    cfg.URL,
		logger: cfg.Logger,
		policy: cfg.Policy,
		config: cfg,
		bus:    bus,
		state:  newStateCell(StateDisconnected),
	}
}

// SetOnMessage installs the inbound frame sink.
func (m *Manager) SetOnMessage(fn OnMessage) { m.onMessage = fn }

// SetResubscribe installs the post-reconnect resubscription hook.
func (m *Manager) SetResubscribe(fn ResubscribeFunc) { m.resubscribe = fn }

// SetPingFunc installs the application-level heartbeat frame builder. When
// unset, heartbeatLoop falls back to a transport-level control-frame ping.
func (m *Manager) SetPingFunc(fn PingFunc) { m.buildPing = fn }

// State returns the current connection state.
func (m *Manager) State() State { return m.state.get() }

// IsConnected reports whether the manager currently holds a live connection.
func (m *Manager) IsConnected() bool { return m.state.get() == StateConnected }

// Start performs the initial handshake and launches the read and heartbeat
// goroutines; the reconnect goroutine is started later by the read loop
// when the connection drops. It returns once the first connection succeeds
// or the dial context fails.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.state.set(StateConnecting)

	if err := m.connect(m.ctx); err != nil {
		return fmt.Errorf("initial connection: %w", err)
	}

	m.wg.Add(2)
	go m.readLoop()
	go m.heartbeatLoop()

	return nil
}

// connect dials the provider, applies TLS/Nagle/frame-size tuning, and
// installs the pong handler. On success it transitions to Connected and
// emits the Connected event.
func (m *Manager) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: m.config.DialTimeout,
		TLSClientConfig:  &tls.Config{MinVersion: tls.VersionTLS12},
		NetDialContext: (&net.Dialer{
			Timeout:   m.config.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		NetDialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			d := &net.Dialer{Timeout: m.config.DialTimeout, KeepAlive: 30 * time.Second}
			raw, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if tc, ok := raw.(*net.TCPConn); ok {
				_ = tc.SetNoDelay(true)
			}
			host, _, _ := net.SplitHostPort(addr)
			return tls.Client(raw, &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}), nil
		},
	}

	m.logger.Info("dialing websocket", zap.String("url", m.url))

	conn, _, err := dialer.DialContext(ctx, m.url, http.Header{})
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", krakenerr.ErrTransport, m.url, err)
	}

	conn.SetReadLimit(maxFrameBytes)
	if m.config.PongTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(m.config.PongTimeout))
	}
	conn.SetPongHandler(func(string) error {
		m.lastPong.Store(time.Now().Unix())
		if m.config.PongTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(m.config.PongTimeout))
		}
		return nil
	})
	conn.SetPingHandler(func(data string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	m.mu.Lock()
	m.conn = conn
	m.mu.Unlock()

	now := time.Now()
	m.lastPong.Store(now.Unix())
	m.connectedAt.Store(now.Unix())
	m.state.set(StateConnected)
	m.bus.Emit(events.Event{Kind: events.KindConnected})

	ActiveConnections.Set(1)
	m.logger.Info("websocket connected")

	return nil
}

// Send writes a single text frame. Safe to call concurrently with reads;
// gorilla/websocket requires serialized writes, which the mutex provides.
func (m *Manager) Send(frame []byte) error {
	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("%w: send attempted with no live connection", krakenerr.ErrConnectionClosed)
	}

	m.mu.Lock()
	err := conn.WriteMessage(websocket.TextMessage, frame)
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: write: %v", krakenerr.ErrTransport, err)
	}
	return nil
}

func (m *Manager) readLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		m.mu.RLock()
		conn := m.conn
		m.mu.RUnlock()

		if conn == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		_, frame, err := conn.ReadMessage()
		if err != nil {
			if m.shutdown.Load() {
				return
			}

			if start := m.connectedAt.Load(); start > 0 {
				ConnectionDuration.Observe(time.Since(time.Unix(start, 0)).Seconds())
			}

			m.logger.Warn("websocket read failed", zap.Error(err))
			ActiveConnections.Set(0)
			m.beginReconnect("read error: " + err.Error())
			return
		}

		MessagesReceivedTotal.Inc()

		if m.onMessage != nil {
			m.onMessage(frame)
		}
	}
}

func (m *Manager) heartbeatLoop() {
	defer m.wg.Done()

	interval := m.config.PingInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if m.state.get() != StateConnected {
				continue
			}

			if m.buildPing != nil {
				reqID := m.pingReqID.Add(1)
				frame, err := m.buildPing(reqID)
				if err != nil {
					m.logger.Warn("build ping failed", zap.Error(err))
					continue
				}
				if err := m.Send(frame); err != nil {
					m.logger.Warn("ping failed", zap.Error(err))
				}
				continue
			}

			m.mu.RLock()
			conn := m.conn
			m.mu.RUnlock()
			if conn == nil {
				continue
			}

			m.mu.Lock()
			err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			m.mu.Unlock()
			if err != nil {
				m.logger.Warn("ping failed", zap.Error(err))
			}
		}
	}
}

// beginReconnect transitions to Reconnecting, emits the lifecycle events,
// and runs the backoff loop on its own goroutine so the caller (the
// read-loop goroutine that just died) can return immediately.
func (m *Manager) beginReconnect(reason string) {
	if m.shutdown.Load() {
		return
	}

	m.state.set(StateReconnecting)
	m.bus.Emit(events.Event{Kind: events.KindDisconnected, Reason: reason})

	if !m.policy.Enabled {
		m.state.set(StateDisconnected)
		return
	}

	m.wg.Add(1)
	go m.reconnectLoop()
}

func (m *Manager) reconnectLoop() {
	defer m.wg.Done()

	attempt := 0
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		attempt++
		m.bus.Emit(events.Event{Kind: events.KindReconnecting, Attempt: attempt})
		ReconnectAttemptsTotal.Inc()

		delay := m.policy.withJitter(m.policy.delayForAttempt(attempt))
		select {
		case <-time.After(delay):
		case <-m.ctx.Done():
			return
		}

		if err := m.connect(m.ctx); err != nil {
			m.logger.Warn("reconnect attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			m.bus.Emit(events.Event{Kind: events.KindReconnectFailed, Attempt: attempt, Err: err})
			ReconnectFailuresTotal.Inc()

			if m.policy.exhausted(attempt) {
				m.bus.Emit(events.Event{Kind: events.KindReconnectExhausted, Attempt: attempt})
				m.state.set(StateDisconnected)
				return
			}
			continue
		}

		if m.resubscribe != nil {
			if err := m.resubscribe(m.ctx); err != nil {
				m.logger.Error("resubscribe after reconnect failed", zap.Error(err))
			}
		}

		m.bus.Emit(events.Event{Kind: events.KindReconnected})
		m.logger.Info("reconnected", zap.Int("attempts", attempt))

		m.wg.Add(1)
		go m.readLoop()
		return
	}
}

// Reconnect closes the live connection so the read loop's reconnect path
// takes over with a fresh backoff attempt counter. The first redial still
// waits the policy's first backoff delay, and when the policy's Enabled is
// false the manager ends in StateDisconnected without redialing.
func (m *Manager) Reconnect(ctx context.Context) error {
	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()
	if conn != nil {
		_ = conn.Close()
	}
	return nil
}

// Close shuts the manager down: sets the shutdown flag, closes the
// connection, cancels the context, and waits for every goroutine to exit.
func (m *Manager) Close() error {
	m.shutdown.Store(true)
	m.bus.Emit(events.Event{Kind: events.KindDisconnected, Reason: "shutdown"})

	if m.cancel != nil {
		m.cancel()
	}

	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()
	if conn != nil {
		_ = conn.Close()
	}

	m.wg.Wait()

	m.state.set(StateDisconnected)
	ActiveConnections.Set(0)
	m.logger.Info("websocket manager closed")

	return nil
}
