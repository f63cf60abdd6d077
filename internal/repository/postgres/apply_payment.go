package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// ApplyPayment locks the address row, advances it with obs and, when outpoint is set,
// records that output in the same database transaction. The output amount is the part of
// obs.AmountReceived not already attributed to other outputs of the address.
func (r *Repository) ApplyPayment(
	ctx context.Context,
	addressID int64,
	obs model.PaymentObservation,
	outpoint *model.Outpoint,
	now time.Time,
) (model.PaymentUpdate, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("apply_payment", err, start)
	}()

	var update model.PaymentUpdate
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.AddressRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", addressID).Take(&rec).Error; err != nil {
			return err
		}

		update.Previous = rec
		update.Changed = rec.ApplyObservation(obs, now)
		if update.Changed {
			err := tx.Model(&model.AddressRecord{}).Where("id = ?", rec.ID).Updates(map[string]any{
				"amount_received": rec.AmountReceived,
				"confirmations":   rec.Confirmations,
				"status":          rec.Status,
				"first_seen":      rec.FirstSeen,
				"confirmed_at":    rec.ConfirmedAt,
				"updated_at":      rec.UpdatedAt,
			}).Error
			if err != nil {
				return err
			}
		}
		update.Current = rec

		if outpoint == nil {
			return nil
		}

		var existing []model.TransactionRecord
		if err := tx.Where("address_id = ?", rec.ID).Find(&existing).Error; err != nil {
			return err
		}

		amount := max(obs.AmountReceived-model.SumAmounts(existing, outpoint), 0)
		stored, err := upsertTransaction(tx, model.NewTransactionRecord(rec.ID, *outpoint, amount, obs.Confirmations, nil, nil, now))
		if err != nil {
			return err
		}
		update.Transaction = &stored
		return nil
	})
	if err != nil {
		err = fmt.Errorf("apply payment to address %d: %w", addressID, translateError(err))
		return model.PaymentUpdate{}, err
	}
	return update, nil
}
