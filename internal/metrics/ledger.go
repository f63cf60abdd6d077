package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

var (
	ledgerAddressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "ledger",
		Name:      "addresses_generated_total",
		Help:      "Count of address generation attempts.",
	}, []string{"network", "status"})
	ledgerAddressDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcpayments",
		Subsystem: "ledger",
		Name:      "address_generation_duration_seconds",
		Help:      "Duration of address generation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	ledgerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "ledger",
		Name:      "status_transitions_total",
		Help:      "Count of payment status transitions.",
	}, []string{"network", "from", "to"})
	ledgerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "ledger",
		Name:      "transactions_recorded_total",
		Help:      "Count of recorded transaction outputs.",
	}, []string{"network", "status"})
)

// Ledger tracks metrics for the address ledger.
type Ledger struct {
	network model.Network
}

// NewLedger constructs a Ledger collector.
func NewLedger(network model.Network) *Ledger {
	if network == "" {
		network = "unknown"
	}
	return &Ledger{network: network}
}

// ObserveAddressGenerated records an address generation outcome and duration.
func (m Ledger) ObserveAddressGenerated(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ledgerAddressesTotal.WithLabelValues(string(m.network), status).Inc()
	ledgerAddressDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveTransition records a payment status change.
func (m Ledger) ObserveTransition(from, to model.PaymentStatus) {
	if from == to {
		return
	}
	ledgerTransitionsTotal.WithLabelValues(string(m.network), string(from), string(to)).Inc()
}

// ObserveTransaction records a transaction upsert outcome.
func (m Ledger) ObserveTransaction(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ledgerTransactionsTotal.WithLabelValues(string(m.network), status).Inc()
}
