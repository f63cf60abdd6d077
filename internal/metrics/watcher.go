package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

var (
	watcherIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "watcher",
		Name:      "iterations_total",
		Help:      "Count of chain watcher iterations.",
	}, []string{"network", "status"})
	watcherIterationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcpayments",
		Subsystem: "watcher",
		Name:      "iteration_duration_seconds",
		Help:      "Duration of chain watcher iterations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	watcherActiveAddresses = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "btcpayments",
		Subsystem: "watcher",
		Name:      "active_addresses",
		Help:      "Number of addresses watched in the last iteration.",
	}, []string{"network"})
	watcherMatchedOutputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "watcher",
		Name:      "matched_outputs_total",
		Help:      "Count of outputs paying a watched address.",
	}, []string{"network"})
	watcherScannedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "btcpayments",
		Subsystem: "watcher",
		Name:      "scanned_height",
		Help:      "Highest block height scanned.",
	}, []string{"network"})
)

// Watcher tracks metrics for the chain watcher.
type Watcher struct {
	network model.Network
}

// NewWatcher constructs a Watcher collector.
func NewWatcher(network model.Network) *Watcher {
	if network == "" {
		network = "unknown"
	}
	return &Watcher{network: network}
}

// ObserveIteration records one watcher iteration.
func (m Watcher) ObserveIteration(err error, addresses int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	watcherIterationsTotal.WithLabelValues(string(m.network), status).Inc()
	watcherIterationDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	watcherActiveAddresses.WithLabelValues(string(m.network)).Set(float64(addresses))
}

// ObserveMatchedOutputs adds outputs found paying watched addresses.
func (m Watcher) ObserveMatchedOutputs(count int) {
	watcherMatchedOutputsTotal.WithLabelValues(string(m.network)).Add(float64(count))
}

// ObserveScannedHeight records the scan cursor.
func (m Watcher) ObserveScannedHeight(height int64) {
	watcherScannedHeight.WithLabelValues(string(m.network)).Set(float64(height))
}
