package model

import "time"

// Invoice is a hosted BTCPay invoice as returned to the order subsystem.
type Invoice struct {
	ID           string `json:"id"`
	CheckoutLink string `json:"checkoutLink"`
	Status       string `json:"status"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	OrderID      string `json:"orderId,omitempty"`
}

// InvoiceLink ties an order to the hosted invoice created for it.
type InvoiceLink struct {
	OrderID   string    `gorm:"column:order_id;primaryKey"`
	InvoiceID string    `gorm:"column:invoice_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName binds InvoiceLink to btc_invoices.
func (InvoiceLink) TableName() string {
	return "btc_invoices"
}
