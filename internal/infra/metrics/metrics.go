// Package metrics exposes Prometheus instrumentation for the API and the notifier.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educycle_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "educycle_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "educycle_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// Marketplace
	MarketplaceEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educycle_marketplace_events_total",
			Help: "Marketplace actions by kind (user_registered, product_created, order_created, message_sent, ...)",
		},
		[]string{"kind"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educycle_event_publish_failures_total",
			Help: "Events that could not be handed to Pub/Sub",
		},
		[]string{"type"},
	)

	// Notifier
	PushNotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educycle_push_notifications_total",
			Help: "Push notifications by outcome (success, failure, invalid_token)",
		},
		[]string{"outcome"},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMarketplaceEvent counts a successful domain action.
func RecordMarketplaceEvent(kind string) {
	MarketplaceEvents.WithLabelValues(kind).Inc()
}

// RecordPublishFailure counts an event that was dropped.
func RecordPublishFailure(eventType string) {
	EventPublishFailures.WithLabelValues(eventType).Inc()
}

// RecordPushResult adds the counts of one push batch.
func RecordPushResult(success, failure, invalid int) {
	PushNotificationsSent.WithLabelValues("success").Add(float64(success))
	PushNotificationsSent.WithLabelValues("failure").Add(float64(failure))
	PushNotificationsSent.WithLabelValues("invalid_token").Add(float64(invalid))
}
