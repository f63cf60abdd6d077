package ledger

import (
	"context"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Wallet interface {
		GenerateOrderAddress(index uint32) (wallet.OrderAddress, error)
	}
	KeySealer interface {
		EncryptPrivateKey(privateKeyHex, orderID string) (string, error)
	}
	Repository interface {
		NextDerivationIndex(ctx context.Context) (uint32, error)
		CreateAddress(ctx context.Context, rec *model.AddressRecord) error
		AddressByOrderID(ctx context.Context, orderID string) (model.AddressRecord, error)
		AddressByID(ctx context.Context, id int64) (model.AddressRecord, error)
		ActiveAddresses(ctx context.Context, since time.Time) ([]model.AddressRecord, error)
		ApplyPayment(ctx context.Context, addressID int64, obs model.PaymentObservation, outpoint *model.Outpoint, now time.Time) (model.PaymentUpdate, error)
		UpsertTransaction(ctx context.Context, rec model.TransactionRecord) (model.TransactionRecord, error)
		TransactionsByAddress(ctx context.Context, addressID int64) ([]model.TransactionRecord, error)
	}
	Metrics interface {
		ObserveAddressGenerated(err error, started time.Time)
		ObserveTransition(from, to model.PaymentStatus)
		ObserveTransaction(err error)
	}
)
