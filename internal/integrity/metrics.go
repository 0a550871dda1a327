package integrity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IntegrityTripped is 1 while a forced reconnect is in flight due to a
	// sustained checksum failure, 0 otherwise.
	IntegrityTripped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "krakenmd_integrity_tripped",
		Help: "Whether the order-book integrity monitor has forced a reconnect",
	})

	// IntegrityTripsTotal counts every time the monitor has tripped.
	IntegrityTripsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krakenmd_integrity_trips_total",
		Help: "Total number of times the integrity monitor forced a reconnect",
	})

	// IntegrityConsecutiveFailures tracks the current consecutive
	// checksum-failure streak per symbol.
	IntegrityConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "krakenmd_integrity_consecutive_failures",
			Help: "Current consecutive checksum-failure count per symbol",
		},
		[]string{"symbol"},
	)
)
