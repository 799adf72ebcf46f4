package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strmly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strmly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strmly_wallet_transfers_total",
			Help: "Total number of completed wallet transfers",
		},
		[]string{"transfer_type"},
	)

	TransferAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strmly_wallet_transfer_amount_total",
			Help: "Total amount moved by wallet transfers, in minor units",
		},
		[]string{"transfer_type"},
	)

	AccessGrantsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strmly_access_grants_total",
			Help: "Total number of access grants created",
		},
		[]string{"content_type", "access_type"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strmly_notifications_total",
			Help: "Total number of notification publish attempts",
		},
		[]string{"event", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTransfer(transferType string, amount int64) {
	TransfersTotal.WithLabelValues(transferType).Inc()
	TransferAmountTotal.WithLabelValues(transferType).Add(float64(amount))
}

func RecordAccessGrant(contentType, accessType string) {
	AccessGrantsTotal.WithLabelValues(contentType, accessType).Inc()
}

func RecordNotification(event, status string) {
	NotificationsTotal.WithLabelValues(event, status).Inc()
}
