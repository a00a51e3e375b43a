// Package metrics defines the Prometheus instruments for the stream
// lifecycle and points ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StreamsStarted counts opened stream sessions.
	StreamsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamhub_streams_started_total",
		Help: "Total stream sessions started",
	})

	// StreamsStopped counts closed stream sessions.
	StreamsStopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamhub_streams_stopped_total",
		Help: "Total stream sessions stopped",
	})

	// PointsAwarded accumulates points credited on stream close.
	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamhub_points_awarded_total",
		Help: "Total points credited to streamers",
	})

	// ViewerJoins counts recorded viewer join events.
	ViewerJoins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamhub_viewer_joins_total",
		Help: "Total viewer join events recorded",
	})

	// VendorSearchRequests counts outbound search calls by vendor and outcome.
	VendorSearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamhub_vendor_search_requests_total",
		Help: "Total vendor search requests by vendor and outcome",
	}, []string{"vendor", "outcome"})
)
