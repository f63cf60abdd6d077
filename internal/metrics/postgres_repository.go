package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

var (
	postgresRepoOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcpayments",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of ledger repository operations.",
	}, []string{"operation", "network", "status"})
	postgresRepoOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcpayments",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger repository operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// PostgresRepository tracks metrics for ledger repository operations.
type PostgresRepository struct {
	network model.Network
}

// NewPostgresRepository constructs a metrics collector for repository operations.
func NewPostgresRepository(network model.Network) *PostgresRepository {
	if network == "" {
		network = "unknown"
	}
	return &PostgresRepository{network: network}
}

// Observe records a single repository operation outcome and duration.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	postgresRepoOperationsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	postgresRepoOperationDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
