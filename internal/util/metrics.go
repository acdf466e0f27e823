package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_accepted_total",
		Help: "Total number of orders accepted by staff",
	})

	OrdersRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of orders rejected by staff",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of order placements that did not complete cleanly",
	}, []string{"reason"})

	CreditsGrantedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credits_granted_total",
		Help: "Total credits added to user balances by accepted orders",
	})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Total number of notifications appended to the log",
	}, []string{"type"})

	WhatsAppMessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whatsapp_messages_sent_total",
		Help: "Total number of WhatsApp messages accepted by the gateway",
	})

	WhatsAppMessagesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whatsapp_messages_failed_total",
		Help: "Total number of WhatsApp messages that failed to send",
	}, []string{"reason"})

	WhatsAppSendLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "whatsapp_send_latency_seconds",
		Help:    "Latency of WhatsApp gateway calls",
		Buckets: prometheus.DefBuckets,
	})

	RecordWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_record_writes_total",
		Help: "Total number of collection records written to storage",
	}, []string{"record", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Total number of HTTP requests rejected by the rate limiter",
	})
)
