package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records registration and login attempts by flow and result.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fellowship_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"flow", "result"},
	)

	// InviteConsumptions counts invite code consumption attempts and their
	// outcome (consumed|invalid|expired).
	InviteConsumptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fellowship_invite_consumptions_total",
			Help: "Total number of invite code consumption attempts",
		},
		[]string{"result"},
	)

	// NotificationsPublished counts notifications persisted, by type.
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fellowship_notifications_published_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fellowship_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
