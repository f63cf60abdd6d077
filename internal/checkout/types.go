package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcpayments-backend/internal/btcpay"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		GenerateAddressForOrder(ctx context.Context, orderID string, amountExpected int64) (model.AddressRecord, error)
		GetAddressForOrder(ctx context.Context, orderID string) (model.AddressRecord, error)
	}
	InvoiceRail interface {
		IsReady() bool
		CreateInvoice(ctx context.Context, req btcpay.CreateInvoiceRequest) (model.Invoice, error)
		GetInvoice(ctx context.Context, invoiceID string) (model.Invoice, error)
		VerifyWebhook(signatureHeader string, body []byte) *btcpay.WebhookEvent
	}
	PriceOracle interface {
		GetBitcoinPrice(ctx context.Context) decimal.Decimal
	}
	OrderStore interface {
		AdvanceStatus(ctx context.Context, orderID string, status model.OrderStatus) (bool, error)
		Delete(ctx context.Context, orderID string) error
		SetInvoice(ctx context.Context, orderID, invoiceID string) error
		InvoiceByOrderID(ctx context.Context, orderID string) (string, error)
	}
)
