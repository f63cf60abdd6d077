package model

import "time"

// AddressRecord is the per-order deposit address and its payment progress.
type AddressRecord struct {
	ID                  int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID             string        `gorm:"column:order_id;size:64;not null;uniqueIndex" json:"orderId"`
	Address             string        `gorm:"column:address;size:128;not null;uniqueIndex" json:"address"`
	DerivationIndex     uint32        `gorm:"column:derivation_index;not null;uniqueIndex" json:"derivationIndex"`
	DerivationPath      string        `gorm:"column:derivation_path;size:64;not null" json:"derivationPath"`
	PrivateKeyEncrypted string        `gorm:"column:private_key_encrypted;type:text;not null" json:"-"`
	AmountExpected      int64         `gorm:"column:amount_expected;not null" json:"amountExpected"`
	AmountReceived      int64         `gorm:"column:amount_received;not null;default:0" json:"amountReceived"`
	Confirmations       int64         `gorm:"column:confirmations;not null;default:0" json:"confirmations"`
	Status              PaymentStatus `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	FirstSeen           *time.Time    `gorm:"column:first_seen" json:"firstSeen,omitempty"`
	ConfirmedAt         *time.Time    `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`
	CreatedAt           time.Time     `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time     `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName binds AddressRecord to its postgres table.
func (AddressRecord) TableName() string {
	return "btc_addresses"
}

// PaymentObservation is one report of funds seen on an address.
type PaymentObservation struct {
	AmountReceived int64
	Confirmations  int64
}

// ApplyObservation advances the record with an observation and reports whether it changed.
// The received amount and confirmations never decrease, a settled status is never left,
// and FirstSeen and ConfirmedAt are written at most once.
func (r *AddressRecord) ApplyObservation(obs PaymentObservation, now time.Time) bool {
	before := *r

	if obs.AmountReceived > r.AmountReceived {
		r.AmountReceived = obs.AmountReceived
	}
	if obs.Confirmations > r.Confirmations {
		r.Confirmations = obs.Confirmations
	}

	status := ResolveStatus(r.AmountExpected, r.AmountReceived)
	if !r.Status.Settled() || status.Settled() {
		r.Status = status
	}

	if r.AmountReceived > 0 && r.FirstSeen == nil {
		seen := now
		r.FirstSeen = &seen
	}
	if r.Confirmations >= ConfirmationThreshold && r.ConfirmedAt == nil {
		confirmed := now
		r.ConfirmedAt = &confirmed
	}

	changed := r.AmountReceived != before.AmountReceived ||
		r.Confirmations != before.Confirmations ||
		r.Status != before.Status ||
		r.FirstSeen != before.FirstSeen ||
		r.ConfirmedAt != before.ConfirmedAt
	if changed {
		r.UpdatedAt = now
	}
	return changed
}

// OrderStatus maps the payment progress into the order vocabulary.
func (r AddressRecord) OrderStatus() OrderStatus {
	if !r.Status.Settled() {
		return OrderUnpaid
	}
	if r.ConfirmedAt != nil {
		return OrderConfirmed
	}
	return OrderPaid
}

// PaymentUpdate is the outcome of applying an observation to a locked address row.
type PaymentUpdate struct {
	Previous    AddressRecord
	Current     AddressRecord
	Changed     bool
	Transaction *TransactionRecord
}
