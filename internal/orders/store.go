// Package orders is the narrow boundary to the storefront order subsystem.
// It touches only the id and status columns of the orders table and keeps
// the invoice association in its own table.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

const ordersTable = "orders"

type orderRow struct {
	ID     string            `gorm:"column:id;primaryKey"`
	Status model.OrderStatus `gorm:"column:status"`
}

func (orderRow) TableName() string {
	return ordersTable
}

// Store reads and writes order status on behalf of the payment core.
type Store struct {
	db      *gorm.DB
	metrics Metrics
	now     func() time.Time
}

// NewStore wraps an open connection to the storefront database.
func NewStore(db *gorm.DB, metrics Metrics) *Store {
	return &Store{
		db:      db,
		metrics: metrics,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Status returns the current status token of an order.
func (s *Store) Status(ctx context.Context, orderID string) (status model.OrderStatus, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("order_status", err, start)
	}()

	var row orderRow
	if err = s.db.WithContext(ctx).Select("id", "status").Where("id = ?", orderID).Take(&row).Error; err != nil {
		err = fmt.Errorf("order %s: %w", orderID, translateError(err))
		return "", err
	}
	return row.Status, nil
}

// AdvanceStatus moves an order to status unless its current status is further
// along, and reports whether the status was written. The row is locked while the
// two are compared.
func (s *Store) AdvanceStatus(ctx context.Context, orderID string, status model.OrderStatus) (applied bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("advance_order_status", err, start)
	}()

	if strings.TrimSpace(string(status)) == "" {
		err = fmt.Errorf("%w: empty order status", model.ErrValidation)
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row orderRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			Where("id = ?", orderID).
			Take(&row).Error
		if err != nil {
			return err
		}
		if !status.Supersedes(row.Status) {
			return nil
		}
		if err := tx.Model(&orderRow{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		err = fmt.Errorf("advance order %s status: %w", orderID, translateError(err))
		return false, err
	}
	return applied, nil
}

// Delete removes an order and its invoice association. Deleting a missing order is not an error.
func (s *Store) Delete(ctx context.Context, orderID string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("delete_order", err, start)
	}()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.InvoiceLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&orderRow{}).Error
	})
	if err != nil {
		err = fmt.Errorf("delete order %s: %w", orderID, translateError(err))
		return err
	}
	return nil
}

// SetInvoice associates a hosted invoice with an order. The first association wins:
// repeating it is a no-op and linking a different invoice is a validation error.
func (s *Store) SetInvoice(ctx context.Context, orderID, invoiceID string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("set_order_invoice", err, start)
	}()

	now := s.now()
	link := model.InvoiceLink{
		OrderID:   orderID,
		InvoiceID: invoiceID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoNothing: true,
	}).Create(&link)
	if res.Error != nil {
		err = fmt.Errorf("set invoice for order %s: %w", orderID, translateError(res.Error))
		return err
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var stored model.InvoiceLink
	if err = s.db.WithContext(ctx).Where("order_id = ?", orderID).Take(&stored).Error; err != nil {
		err = fmt.Errorf("set invoice for order %s: %w", orderID, translateError(err))
		return err
	}
	if stored.InvoiceID != invoiceID {
		err = fmt.Errorf("%w: order %s is already linked to invoice %s", model.ErrValidation, orderID, stored.InvoiceID)
		return err
	}
	return nil
}

// InvoiceByOrderID returns the invoice id associated with an order.
func (s *Store) InvoiceByOrderID(ctx context.Context, orderID string) (invoiceID string, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("invoice_by_order_id", err, start)
	}()

	var link model.InvoiceLink
	if err = s.db.WithContext(ctx).Where("order_id = ?", orderID).Take(&link).Error; err != nil {
		err = fmt.Errorf("invoice for order %s: %w", orderID, translateError(err))
		return "", err
	}
	return link.InvoiceID, nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", model.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	default:
		return err
	}
}
