package wsconn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveConnections tracks whether the session currently holds a live
	// connection (1) or not (0).
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "krakenmd_ws_active_connections",
		Help: "Whether the WebSocket session currently holds a live connection",
	})

	// ReconnectAttemptsTotal counts every reconnect attempt, successful or not.
	ReconnectAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krakenmd_ws_reconnect_attempts_total",
		Help: "Total number of WebSocket reconnection attempts",
	})

	// ReconnectFailuresTotal counts reconnect attempts that failed to dial.
	ReconnectFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krakenmd_ws_reconnect_failures_total",
		Help: "Total number of WebSocket reconnection failures",
	})

	// MessagesReceivedTotal counts raw inbound frames, before codec parsing.
	MessagesReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krakenmd_ws_messages_received_total",
		Help: "Total number of raw WebSocket frames received",
	})

	// ConnectionDuration observes how long each connection lived before
	// dropping, bucketed from one minute to one day.
	ConnectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "krakenmd_ws_connection_duration_seconds",
		Help:    "Duration of WebSocket connections before disconnect",
		Buckets: []float64{60, 300, 600, 1800, 3600, 7200, 14400, 28800, 43200, 86400},
	})
)
