package httpapi

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcpayments-backend/internal/checkout"
	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		GenerateAddressForOrder(ctx context.Context, orderID string, amountExpected int64) (model.AddressRecord, error)
		GetAddressForOrder(ctx context.Context, orderID string) (model.AddressRecord, error)
		GetActiveAddresses(ctx context.Context) ([]model.AddressRecord, error)
		UpdateAddressPayment(ctx context.Context, addressID int64, amountReceived int64, confirmations int64, outpoint *model.Outpoint) (model.AddressRecord, error)
		RecordTransaction(ctx context.Context, in ledger.TransactionInput) (model.TransactionRecord, error)
		ListTransactions(ctx context.Context, addressID int64) ([]model.TransactionRecord, error)
	}
	Checkout interface {
		CreatePayment(ctx context.Context, req checkout.Request) (checkout.Payment, error)
		ApplyWebhook(ctx context.Context, signatureHeader string, body []byte) (checkout.WebhookResult, error)
	}
	Invoices interface {
		GetInvoice(ctx context.Context, invoiceID string) (model.Invoice, error)
	}
	InvoiceLinks interface {
		InvoiceByOrderID(ctx context.Context, orderID string) (string, error)
	}
	PriceOracle interface {
		GetBitcoinPrice(ctx context.Context) decimal.Decimal
	}
	Wallet interface {
		MasterPublicKey() (string, error)
	}
)
