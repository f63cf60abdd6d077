// Package ledger tracks per-order deposit addresses and the funds observed on them.
package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/clock"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// Service is the address ledger and transaction recorder.
type Service struct {
	wallet       Wallet
	sealer       KeySealer
	repo         Repository
	metrics      Metrics
	clock        clock.Clock
	logger       *zap.Logger
	activeWindow time.Duration
}

// NewService wires the ledger with its collaborators.
func NewService(
	wallet Wallet,
	sealer KeySealer,
	repo Repository,
	metrics Metrics,
	clk clock.Clock,
	logger *zap.Logger,
) (*Service, error) {
	if wallet == nil || sealer == nil || repo == nil {
		return nil, fmt.Errorf("%w: ledger requires wallet, sealer and repository", model.ErrConfiguration)
	}
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		wallet:       wallet,
		sealer:       sealer,
		repo:         repo,
		metrics:      metrics,
		clock:        clk,
		logger:       logger.Named("ledger"),
		activeWindow: activeWindow,
	}, nil
}

// GenerateAddressForOrder derives, seals and stores a fresh address for orderID.
// An order that already has an address is rejected with model.ErrValidation.
func (s *Service) GenerateAddressForOrder(ctx context.Context, orderID string, amountExpected int64) (rec model.AddressRecord, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveAddressGenerated(err, started)
	}()

	if err = validateOrderID(orderID); err != nil {
		return model.AddressRecord{}, err
	}
	if amountExpected <= 0 {
		err = fmt.Errorf("%w: expected amount must be positive, got %d", model.ErrValidation, amountExpected)
		return model.AddressRecord{}, err
	}

	existing, lookupErr := s.repo.AddressByOrderID(ctx, orderID)
	switch {
	case lookupErr == nil:
		err = fmt.Errorf("%w: order %s already has address %s", model.ErrValidation, orderID, existing.Address)
		return model.AddressRecord{}, err
	case !errors.Is(lookupErr, model.ErrNotFound):
		err = lookupErr
		return model.AddressRecord{}, err
	}

	index, err := s.repo.NextDerivationIndex(ctx)
	if err != nil {
		return model.AddressRecord{}, err
	}

	derived, err := s.wallet.GenerateOrderAddress(index)
	if err != nil {
		return model.AddressRecord{}, err
	}

	sealed, err := s.sealer.EncryptPrivateKey(derived.PrivateKey, orderID)
	if err != nil {
		err = fmt.Errorf("seal private key for order %s: %w", orderID, err)
		return model.AddressRecord{}, err
	}

	now := s.clock.Now()
	rec = model.AddressRecord{
		OrderID:             orderID,
		Address:             derived.Address,
		DerivationIndex:     derived.Index,
		DerivationPath:      derived.DerivationPath,
		PrivateKeyEncrypted: sealed,
		AmountExpected:      amountExpected,
		Status:              model.PaymentPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err = s.repo.CreateAddress(ctx, &rec); err != nil {
		return model.AddressRecord{}, err
	}

	s.logger.Info("address generated",
		zap.String("order_id", orderID),
		zap.Uint32("derivation_index", index),
		zap.String("address", rec.Address),
		zap.Int64("amount_expected", amountExpected),
	)
	return rec, nil
}

// GetAddressForOrder returns the address of orderID or model.ErrNotFound.
func (s *Service) GetAddressForOrder(ctx context.Context, orderID string) (model.AddressRecord, error) {
	if err := validateOrderID(orderID); err != nil {
		return model.AddressRecord{}, err
	}
	return s.repo.AddressByOrderID(ctx, orderID)
}

// GetAddressByID returns the address with id or model.ErrNotFound.
func (s *Service) GetAddressByID(ctx context.Context, id int64) (model.AddressRecord, error) {
	if id <= 0 {
		return model.AddressRecord{}, fmt.Errorf("%w: address id must be positive", model.ErrValidation)
	}
	return s.repo.AddressByID(ctx, id)
}

// GetActiveAddresses lists pending and partial addresses created within the active window.
func (s *Service) GetActiveAddresses(ctx context.Context) ([]model.AddressRecord, error) {
	return s.repo.ActiveAddresses(ctx, s.clock.Now().Add(-s.activeWindow))
}

// UpdateAddressPayment applies an observation of funds on an address. Updates for the
// same address are serialized; stale observations never move the record backwards.
// When outpoint is set the output is recorded in the same step.
func (s *Service) UpdateAddressPayment(
	ctx context.Context,
	addressID int64,
	amountReceived int64,
	confirmations int64,
	outpoint *model.Outpoint,
) (model.AddressRecord, error) {
	if addressID <= 0 {
		return model.AddressRecord{}, fmt.Errorf("%w: address id must be positive", model.ErrValidation)
	}
	if amountReceived < 0 || confirmations < 0 {
		return model.AddressRecord{}, fmt.Errorf("%w: amount and confirmations must not be negative", model.ErrValidation)
	}
	if outpoint != nil {
		normalized, err := normalizeTxID(outpoint.TxID)
		if err != nil {
			return model.AddressRecord{}, err
		}
		outpoint = &model.Outpoint{TxID: normalized, Vout: outpoint.Vout}
	}

	obs := model.PaymentObservation{AmountReceived: amountReceived, Confirmations: confirmations}
	update, err := s.repo.ApplyPayment(ctx, addressID, obs, outpoint, s.clock.Now())
	if outpoint != nil {
		s.metrics.ObserveTransaction(err)
	}
	if err != nil {
		return model.AddressRecord{}, err
	}

	s.metrics.ObserveTransition(update.Previous.Status, update.Current.Status)
	if update.Previous.Status != update.Current.Status {
		s.logger.Info("payment status changed",
			zap.Int64("address_id", addressID),
			zap.String("order_id", update.Current.OrderID),
			zap.String("from", string(update.Previous.Status)),
			zap.String("to", string(update.Current.Status)),
			zap.Int64("amount_received", update.Current.AmountReceived),
		)
	}
	return update.Current, nil
}

// TransactionInput is one funding output reported by the chain watcher.
type TransactionInput struct {
	AddressID     int64
	TxID          string
	Vout          uint32
	Amount        int64
	Confirmations int64
	BlockHeight   *int64
	BlockHash     *string
}

// RecordTransaction upserts an output keyed by (txid, vout). Duplicate and out-of-order
// deliveries are absorbed.
func (s *Service) RecordTransaction(ctx context.Context, in TransactionInput) (rec model.TransactionRecord, err error) {
	defer func() {
		s.metrics.ObserveTransaction(err)
	}()

	if in.AddressID <= 0 {
		err = fmt.Errorf("%w: address id must be positive", model.ErrValidation)
		return model.TransactionRecord{}, err
	}
	if in.Amount < 0 || in.Confirmations < 0 {
		err = fmt.Errorf("%w: amount and confirmations must not be negative", model.ErrValidation)
		return model.TransactionRecord{}, err
	}
	txid, err := normalizeTxID(in.TxID)
	if err != nil {
		return model.TransactionRecord{}, err
	}
	if in.BlockHash != nil {
		hash, hashErr := normalizeBlockHash(*in.BlockHash)
		if hashErr != nil {
			err = hashErr
			return model.TransactionRecord{}, err
		}
		in.BlockHash = &hash
	}

	outpoint := model.Outpoint{TxID: txid, Vout: in.Vout}
	return s.repo.UpsertTransaction(ctx, model.NewTransactionRecord(
		in.AddressID, outpoint, in.Amount, in.Confirmations, in.BlockHeight, in.BlockHash, s.clock.Now(),
	))
}

// ListTransactions returns the outputs recorded for an address.
func (s *Service) ListTransactions(ctx context.Context, addressID int64) ([]model.TransactionRecord, error) {
	if addressID <= 0 {
		return nil, fmt.Errorf("%w: address id must be positive", model.ErrValidation)
	}
	return s.repo.TransactionsByAddress(ctx, addressID)
}

func validateOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("%w: order id is required", model.ErrValidation)
	}
	if len(orderID) > maxOrderIDLength {
		return fmt.Errorf("%w: order id longer than %d characters", model.ErrValidation, maxOrderIDLength)
	}
	return nil
}

// normalizeTxID accepts any non-blank identifier that fits the txid column.
// Hex txids are lowercased so both spellings map to one outpoint.
func normalizeTxID(txid string) (string, error) {
	txid = strings.TrimSpace(txid)
	if txid == "" {
		return "", fmt.Errorf("%w: txid is required", model.ErrValidation)
	}
	if len(txid) > maxTxIDLength {
		return "", fmt.Errorf("%w: txid longer than %d characters", model.ErrValidation, maxTxIDLength)
	}
	if _, err := hex.DecodeString(txid); err == nil {
		txid = strings.ToLower(txid)
	}
	return txid, nil
}

func normalizeBlockHash(hash string) (string, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if len(hash) != 64 {
		return "", fmt.Errorf("%w: block hash must be 64 hex characters", model.ErrValidation)
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "", fmt.Errorf("%w: block hash is not hex", model.ErrValidation)
	}
	return hash, nil
}
