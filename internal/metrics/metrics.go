// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeCheckFailed = "check_failed"
	OutcomeFailed      = "failed"
	OutcomeCreated     = "created"
)

var RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsvpdemo_rsvp_submissions_total",
	Help: "RSVP form submissions by outcome",
}, []string{"outcome"})

var GuestCountWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rsvpdemo_guest_count_write_errors_total",
	Help: "Failed guest_count updates after a successful insert",
})

var RealtimeNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rsvpdemo_realtime_notifications_total",
	Help: "Change notifications received from the store, by result",
}, []string{"result"})

var RealtimeSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rsvpdemo_realtime_subscriptions",
	Help: "Open realtime subscriptions",
})

var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rsvpdemo_sessions",
	Help: "Browser sessions holding a form view model",
})

var WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "rsvpdemo_websocket_connections",
	Help: "Open live-update websocket connections",
})
