package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// AddressByOrderID returns the address record of an order.
func (r *Repository) AddressByOrderID(ctx context.Context, orderID string) (model.AddressRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_by_order_id", err, start)
	}()

	var rec model.AddressRecord
	if err = r.db.WithContext(ctx).Where("order_id = ?", orderID).Take(&rec).Error; err != nil {
		err = fmt.Errorf("address for order %s: %w", orderID, translateError(err))
		return model.AddressRecord{}, err
	}
	return rec, nil
}

// AddressByID returns the address record with the given id.
func (r *Repository) AddressByID(ctx context.Context, id int64) (model.AddressRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_by_id", err, start)
	}()

	var rec model.AddressRecord
	if err = r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		err = fmt.Errorf("address %d: %w", id, translateError(err))
		return model.AddressRecord{}, err
	}
	return rec, nil
}

// ActiveAddresses returns pending and partial records created at or after since, newest first.
func (r *Repository) ActiveAddresses(ctx context.Context, since time.Time) ([]model.AddressRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("active_addresses", err, start)
	}()

	var records []model.AddressRecord
	err = r.db.WithContext(ctx).
		Where("status IN ? AND created_at >= ?", []model.PaymentStatus{model.PaymentPending, model.PaymentPartial}, since).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		err = fmt.Errorf("query active addresses: %w", err)
		return nil, err
	}
	return records, nil
}
