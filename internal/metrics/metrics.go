package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook metrics
	WebhookRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_webhook_requests_total",
			Help: "Total number of webhook deliveries by response outcome",
		},
		[]string{"outcome"},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_webhook_events_total",
			Help: "Total number of verified webhook events by type and result",
		},
		[]string{"type", "result"},
	)

	// Storage metrics
	UpsertDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "regdesk_user_upsert_duration_seconds",
			Help:    "Duration of user upserts in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Registration metrics
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_registrations_total",
			Help: "Total number of registration form submissions by result",
		},
		[]string{"result"},
	)
)
