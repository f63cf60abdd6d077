package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// CreateAddress inserts rec and fills its generated id. A duplicate order id, address
// or derivation index fails with model.ErrValidation.
func (r *Repository) CreateAddress(ctx context.Context, rec *model.AddressRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("create_address", err, start)
	}()

	if err = r.db.WithContext(ctx).Create(rec).Error; err != nil {
		err = fmt.Errorf("insert address for order %s: %w", rec.OrderID, translateError(err))
		return err
	}
	return nil
}
