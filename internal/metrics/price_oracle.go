package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	priceFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "price_oracle",
		Name:      "fetch_total",
		Help:      "Count of price source fetches.",
	}, []string{"source", "status"})
	priceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcpayments",
		Subsystem: "price_oracle",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of price source fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "status"})
	priceFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "price_oracle",
		Name:      "fallback_total",
		Help:      "Count of price lookups answered with the fallback rate.",
	})
	priceCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "price_oracle",
		Name:      "cache_hits_total",
		Help:      "Count of price lookups answered from the cache.",
	})
	priceLastRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "btcpayments",
		Subsystem: "price_oracle",
		Name:      "last_rate_usd",
		Help:      "Last BTC/USD rate served.",
	})
)

// PriceOracle tracks metrics for the BTC/USD oracle.
type PriceOracle struct{}

// NewPriceOracle constructs a PriceOracle collector.
func NewPriceOracle() *PriceOracle {
	return &PriceOracle{}
}

// ObserveFetch records a single source fetch outcome and duration.
func (PriceOracle) ObserveFetch(source string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	priceFetchTotal.WithLabelValues(source, status).Inc()
	priceFetchDuration.WithLabelValues(source, status).Observe(time.Since(started).Seconds())
}

// ObserveFallback records that every source failed.
func (PriceOracle) ObserveFallback() {
	priceFallbackTotal.Inc()
}

// ObserveCacheHit records a lookup served from the cache.
func (PriceOracle) ObserveCacheHit() {
	priceCacheHitsTotal.Inc()
}

// ObserveRate records the rate handed to callers.
func (PriceOracle) ObserveRate(rate float64) {
	priceLastRate.Set(rate)
}
