package model

import "time"

// TransactionRecord is a single funding output observed for an address.
type TransactionRecord struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AddressID     int64      `gorm:"column:address_id;not null;index" json:"addressId"`
	TxID          string     `gorm:"column:txid;size:64;not null;uniqueIndex:uq_btc_transactions_outpoint,priority:1" json:"txid"`
	Vout          uint32     `gorm:"column:vout;not null;uniqueIndex:uq_btc_transactions_outpoint,priority:2" json:"vout"`
	Amount        int64      `gorm:"column:amount;not null" json:"amount"`
	Confirmations int64      `gorm:"column:confirmations;not null;default:0" json:"confirmations"`
	BlockHeight   *int64     `gorm:"column:block_height" json:"blockHeight,omitempty"`
	BlockHash     *string    `gorm:"column:block_hash;size:64" json:"blockHash,omitempty"`
	ReceivedAt    time.Time  `gorm:"column:received_at;not null" json:"receivedAt"`
	ConfirmedAt   *time.Time `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`
}

// TableName binds TransactionRecord to its postgres table.
func (TransactionRecord) TableName() string {
	return "btc_transactions"
}

// NewTransactionRecord builds the row inserted for a first delivery of an output.
func NewTransactionRecord(addressID int64, outpoint Outpoint, amount, confirmations int64, blockHeight *int64, blockHash *string, now time.Time) TransactionRecord {
	rec := TransactionRecord{
		AddressID:     addressID,
		TxID:          outpoint.TxID,
		Vout:          outpoint.Vout,
		Amount:        amount,
		Confirmations: confirmations,
		BlockHeight:   blockHeight,
		BlockHash:     blockHash,
		ReceivedAt:    now,
	}
	if confirmations >= ConfirmationThreshold {
		confirmed := now
		rec.ConfirmedAt = &confirmed
	}
	return rec
}

// Outpoint returns the (txid, vout) key of the record.
func (t TransactionRecord) Outpoint() Outpoint {
	return Outpoint{TxID: t.TxID, Vout: t.Vout}
}

// SumAmounts totals the amounts of the records, skipping the excluded outpoint.
func SumAmounts(records []TransactionRecord, exclude *Outpoint) int64 {
	var total int64
	for _, rec := range records {
		if exclude != nil && rec.Outpoint() == *exclude {
			continue
		}
		total += rec.Amount
	}
	return total
}
