package watcher

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawMempool() ([]*chainhash.Hash, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
	Ledger interface {
		GetActiveAddresses(ctx context.Context) ([]model.AddressRecord, error)
		RecordTransaction(ctx context.Context, in ledger.TransactionInput) (model.TransactionRecord, error)
		ListTransactions(ctx context.Context, addressID int64) ([]model.TransactionRecord, error)
		UpdateAddressPayment(ctx context.Context, addressID int64, amountReceived int64, confirmations int64, outpoint *model.Outpoint) (model.AddressRecord, error)
	}
	Metrics interface {
		ObserveIteration(err error, addresses int, started time.Time)
		ObserveMatchedOutputs(count int)
		ObserveScannedHeight(height int64)
	}
)
