package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	btcpayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "btcpay_client",
		Name:      "operations_total",
		Help:      "Count of BTCPay API operations.",
	}, []string{"operation", "status"})
	btcpayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcpayments",
		Subsystem: "btcpay_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of BTCPay API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	btcpayWebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "btcpay_client",
		Name:      "webhooks_total",
		Help:      "Count of inbound BTCPay webhooks by outcome.",
	}, []string{"event", "status"})
)

// BTCPayClient tracks metrics for the invoice rail.
type BTCPayClient struct{}

// NewBTCPayClient constructs a BTCPayClient collector.
func NewBTCPayClient() *BTCPayClient {
	return &BTCPayClient{}
}

// Observe records a single API call outcome and duration.
func (BTCPayClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	btcpayRequestsTotal.WithLabelValues(operation, status).Inc()
	btcpayRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// ObserveWebhook records a webhook delivery. Rejected deliveries use the "rejected" event label.
func (BTCPayClient) ObserveWebhook(event, status string) {
	if event == "" {
		event = "rejected"
	}
	btcpayWebhooksTotal.WithLabelValues(event, status).Inc()
}
