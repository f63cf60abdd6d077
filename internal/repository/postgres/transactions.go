package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// UpsertTransaction records an output keyed by (txid, vout). Re-deliveries only move
// confirmations forward, refresh block metadata when not stale and set confirmed_at once.
// The stored amount and owning address never change; delivering a recorded output
// for another address is a validation error.
func (r *Repository) UpsertTransaction(ctx context.Context, rec model.TransactionRecord) (model.TransactionRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_transaction", err, start)
	}()

	var stored model.TransactionRecord
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		stored, txErr = upsertTransaction(tx, rec)
		return txErr
	})
	if err != nil {
		err = fmt.Errorf("upsert transaction %s:%d: %w", rec.TxID, rec.Vout, translateError(err))
		return model.TransactionRecord{}, err
	}
	return stored, nil
}

func upsertTransaction(tx *gorm.DB, rec model.TransactionRecord) (model.TransactionRecord, error) {
	rec.ID = 0
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "txid"}, {Name: "vout"}},
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "confirmations"},
				Value:  gorm.Expr("GREATEST(btc_transactions.confirmations, EXCLUDED.confirmations)"),
			},
			{
				Column: clause.Column{Name: "block_height"},
				Value: gorm.Expr(`CASE WHEN EXCLUDED.confirmations >= btc_transactions.confirmations
	THEN COALESCE(EXCLUDED.block_height, btc_transactions.block_height)
	ELSE btc_transactions.block_height END`),
			},
			{
				Column: clause.Column{Name: "block_hash"},
				Value: gorm.Expr(`CASE WHEN EXCLUDED.confirmations >= btc_transactions.confirmations
	THEN COALESCE(EXCLUDED.block_hash, btc_transactions.block_hash)
	ELSE btc_transactions.block_hash END`),
			},
			{
				Column: clause.Column{Name: "confirmed_at"},
				Value:  gorm.Expr("COALESCE(btc_transactions.confirmed_at, EXCLUDED.confirmed_at)"),
			},
		},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "btc_transactions.address_id = EXCLUDED.address_id"},
		}},
	}).Create(&rec).Error
	if err != nil {
		return model.TransactionRecord{}, err
	}

	var stored model.TransactionRecord
	if err := tx.Where("txid = ? AND vout = ?", rec.TxID, rec.Vout).Take(&stored).Error; err != nil {
		return model.TransactionRecord{}, err
	}
	if stored.AddressID != rec.AddressID {
		return model.TransactionRecord{}, fmt.Errorf("%w: output %s:%d already recorded for address %d",
			model.ErrValidation, rec.TxID, rec.Vout, stored.AddressID)
	}
	return stored, nil
}

// TransactionsByAddress lists the outputs recorded for an address in arrival order.
func (r *Repository) TransactionsByAddress(ctx context.Context, addressID int64) ([]model.TransactionRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transactions_by_address", err, start)
	}()

	var records []model.TransactionRecord
	err = r.db.WithContext(ctx).
		Where("address_id = ?", addressID).
		Order("received_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		err = fmt.Errorf("query transactions of address %d: %w", addressID, err)
		return nil, err
	}
	return records, nil
}
