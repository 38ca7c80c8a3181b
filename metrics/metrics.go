package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncCycles counts fetch-and-ingest cycles by outcome (counter)
	SyncCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomsync",
			Name:      "sync_cycles_total",
			Help:      "The total number of sync cycles by outcome",
		},
		[]string{"outcome"},
	)

	// EventsIngested counts events written to the mirror (counter)
	EventsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomsync",
			Name:      "events_ingested_total",
			Help:      "The total number of events ingested into the mirror",
		},
	)

	// SyncWatermark exposes the current watermark as unix seconds (gauge)
	SyncWatermark = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roomsync",
			Name:      "sync_watermark_seconds",
			Help:      "Unix timestamp up to which the mirror has ingested all provider events",
		},
	)
)
