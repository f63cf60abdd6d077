package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/pkg/safe"
)

// NextDerivationIndex allocates a fresh index from btc_address_index_seq.
// Concurrent callers always receive distinct values.
func (r *Repository) NextDerivationIndex(ctx context.Context) (uint32, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("next_derivation_index", err, start)
	}()

	var next int64
	if err = r.db.WithContext(ctx).Raw(`SELECT nextval('btc_address_index_seq')`).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("allocate derivation index: %w", err)
	}

	index, err := safe.Uint32(next)
	if err != nil {
		return 0, fmt.Errorf("allocate derivation index: %w", err)
	}
	return index, nil
}
