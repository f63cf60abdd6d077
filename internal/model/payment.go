package model

// PaymentStatus is the amount-based state of an address record.
type PaymentStatus string

var (
	// PaymentPending means nothing was received yet.
	PaymentPending PaymentStatus = "pending"
	// PaymentPartial means less than the expected amount was received.
	PaymentPartial PaymentStatus = "partial"
	// PaymentPaid means exactly the expected amount was received.
	PaymentPaid PaymentStatus = "paid"
	// PaymentOverpaid means more than the expected amount was received.
	PaymentOverpaid PaymentStatus = "overpaid"
)

// ConfirmationThreshold is the confirmation count at which funds are considered settled.
const ConfirmationThreshold int64 = 1

// Settled reports whether the status is terminal (paid or overpaid).
func (s PaymentStatus) Settled() bool {
	return s == PaymentPaid || s == PaymentOverpaid
}

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentOverpaid:
		return true
	default:
		return false
	}
}

// ResolveStatus maps the received amount against the expected amount.
func ResolveStatus(expected, received int64) PaymentStatus {
	switch {
	case received <= 0:
		return PaymentPending
	case received < expected:
		return PaymentPartial
	case received == expected:
		return PaymentPaid
	default:
		return PaymentOverpaid
	}
}

// OrderStatus is the status vocabulary of the storefront order subsystem.
type OrderStatus string

var (
	OrderUnpaid    OrderStatus = "unpaid"
	OrderPaid      OrderStatus = "paid"
	OrderConfirmed OrderStatus = "confirmed"
	OrderExpired   OrderStatus = "expired"
	OrderCancelled OrderStatus = "cancelled"
)

// orderStatusRank orders the statuses an invoice moves an order through. A paid
// order outranks an expired one since BTCPay reports payments after expiry.
var orderStatusRank = map[OrderStatus]int{
	OrderUnpaid:    0,
	OrderExpired:   1,
	OrderPaid:      2,
	OrderConfirmed: 3,
	OrderCancelled: 4,
}

// Supersedes reports whether s may replace current. Statuses set by the storefront
// itself carry no rank and are always superseded.
func (s OrderStatus) Supersedes(current OrderStatus) bool {
	prev, ok := orderStatusRank[current]
	if !ok {
		return true
	}
	next, ok := orderStatusRank[s]
	return ok && next >= prev
}

// Outpoint identifies a single transaction output.
type Outpoint struct {
	TxID string
	Vout uint32
}
