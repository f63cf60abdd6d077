// Package watcher follows a bitcoin node and reports funds arriving on active
// order addresses to the ledger.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/clock"
	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
	"github.com/goodnatureofminers/btcpayments-backend/pkg/safe"
	"github.com/goodnatureofminers/btcpayments-backend/pkg/workerpool"
)

// Config tunes the watcher. Zero values fall back to defaults.
type Config struct {
	Params       *chaincfg.Params
	PollInterval time.Duration
	MaxBackoff   time.Duration
	Lookback     int64
	Workers      int
	ScanMempool  bool
}

// Service scans new blocks (and optionally the mempool) for outputs paying
// active addresses, then reconciles each address from its recorded outputs.
type Service struct {
	chain       ChainClient
	ledger      Ledger
	metrics     Metrics
	cfg         Config
	logger      *zap.Logger
	sleep       func(context.Context, time.Duration) error
	blockSignal <-chan struct{}

	// cursor is the last fully scanned height, -1 before the first scan.
	cursor int64
}

// NewService builds a watcher. blockSignal may be nil; when set, a value on it
// cuts the idle wait short.
func NewService(
	chain ChainClient,
	ledger Ledger,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if chain == nil || ledger == nil {
		return nil, fmt.Errorf("%w: watcher requires chain client and ledger", model.ErrConfiguration)
	}
	if metrics == nil {
		return nil, errors.New("watcher metrics is required")
	}
	if cfg.Params == nil {
		return nil, fmt.Errorf("%w: watcher requires chain params", model.ErrConfiguration)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxBackoff < cfg.PollInterval {
		cfg.MaxBackoff = max(defaultMaxBackoff, cfg.PollInterval)
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = defaultLookback
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkerCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		chain:       chain,
		ledger:      ledger,
		metrics:     metrics,
		cfg:         cfg,
		logger:      logger.Named("watcher").With(zap.String("network", cfg.Params.Name)),
		sleep:       clock.SleepWithContext,
		blockSignal: blockSignal,
		cursor:      -1,
	}, nil
}

// Run polls until ctx is canceled. Failed iterations back off exponentially.
func (s *Service) Run(ctx context.Context) error {
	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := s.cfg.PollInterval
		if err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			wait = clock.Backoff(s.cfg.PollInterval, s.cfg.MaxBackoff, failures)
			s.logger.Warn("watch iteration failed, backing off",
				zap.Error(err),
				zap.Int("failures", failures),
				zap.Duration("sleep", wait),
			)
		} else {
			failures = 0
		}

		if err := s.wait(ctx, wait); err != nil {
			return err
		}
	}
}

// RunOnce performs a single scan and reconcile pass.
func (s *Service) RunOnce(ctx context.Context) (err error) {
	started := time.Now()
	var active []model.AddressRecord
	defer func() {
		s.metrics.ObserveIteration(err, len(active), started)
	}()

	active, err = s.ledger.GetActiveAddresses(ctx)
	if err != nil {
		return fmt.Errorf("load active addresses: %w", err)
	}
	tip, err := s.chain.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}

	if len(active) == 0 {
		s.cursor = tip
		s.metrics.ObserveScannedHeight(tip)
		s.logger.Debug("no active addresses", zap.Int64("tip", tip))
		return nil
	}

	byAddress := make(map[string]model.AddressRecord, len(active))
	for _, rec := range active {
		if !wallet.IsValidAddress(rec.Address, s.cfg.Params) {
			s.logger.Warn("skipping address foreign to network",
				zap.Int64("address_id", rec.ID),
				zap.String("address", rec.Address),
			)
			continue
		}
		byAddress[rec.Address] = rec
	}

	matched, err := s.scanBlocks(ctx, tip, byAddress)
	s.metrics.ObserveMatchedOutputs(matched)
	if err != nil {
		return err
	}
	if s.cfg.ScanMempool {
		matched, err = s.scanMempool(ctx, byAddress)
		s.metrics.ObserveMatchedOutputs(matched)
		if err != nil {
			return err
		}
	}

	return workerpool.Process(ctx, s.cfg.Workers, active, func(ctx context.Context, rec model.AddressRecord) error {
		if err := s.reconcile(ctx, rec, tip); err != nil {
			s.logger.Warn("reconcile address failed", zap.Int64("address_id", rec.ID), zap.Error(err))
			return fmt.Errorf("reconcile address %d: %w", rec.ID, err)
		}
		return nil
	})
}

func (s *Service) scanBlocks(ctx context.Context, tip int64, byAddress map[string]model.AddressRecord) (int, error) {
	if s.cursor > tip {
		s.logger.Warn("node tip moved backwards", zap.Int64("cursor", s.cursor), zap.Int64("tip", tip))
		s.cursor = tip
	}

	from := s.cursor + 1
	if s.cursor < 0 {
		from = max(tip-s.cfg.Lookback+1, 0)
	}
	to := min(tip, from+maxBlocksPerIteration-1)

	matched := 0
	for h := from; h <= to; h++ {
		if err := ctx.Err(); err != nil {
			return matched, err
		}

		hash, err := s.chain.GetBlockHash(h)
		if err != nil {
			return matched, fmt.Errorf("get block hash %d: %w", h, err)
		}
		block, err := s.chain.GetBlockVerboseTx(hash)
		if err != nil {
			return matched, fmt.Errorf("get block %d: %w", h, err)
		}

		height := h
		blockHash := hash.String()
		n, err := s.recordOutputs(ctx, block.Tx, byAddress, tip-h+1, &height, &blockHash)
		matched += n
		if err != nil {
			return matched, fmt.Errorf("block %d: %w", h, err)
		}

		s.cursor = h
		s.metrics.ObserveScannedHeight(h)
	}
	return matched, nil
}

func (s *Service) scanMempool(ctx context.Context, byAddress map[string]model.AddressRecord) (int, error) {
	hashes, err := s.chain.GetRawMempool()
	if err != nil {
		return 0, fmt.Errorf("get raw mempool: %w", err)
	}

	matched := 0
	for _, hash := range hashes {
		if err := ctx.Err(); err != nil {
			return matched, err
		}
		tx, err := s.chain.GetRawTransactionVerbose(hash)
		if err != nil {
			// evicted or mined since the listing
			s.logger.Debug("mempool transaction unavailable", zap.Stringer("txid", hash), zap.Error(err))
			continue
		}
		confirmations, err := safe.Int64(tx.Confirmations)
		if err != nil || confirmations > 0 {
			continue
		}

		n, err := s.recordOutputs(ctx, []btcjson.TxRawResult{*tx}, byAddress, 0, nil, nil)
		matched += n
		if err != nil {
			return matched, fmt.Errorf("mempool: %w", err)
		}
	}
	return matched, nil
}

func (s *Service) recordOutputs(
	ctx context.Context,
	txs []btcjson.TxRawResult,
	byAddress map[string]model.AddressRecord,
	confirmations int64,
	blockHeight *int64,
	blockHash *string,
) (int, error) {
	matched := 0
	for _, tx := range txs {
		for _, vout := range tx.Vout {
			for _, addr := range outputAddresses(vout, s.cfg.Params) {
				rec, ok := byAddress[addr]
				if !ok {
					continue
				}
				amount, err := wallet.BtcToSatoshis(vout.Value)
				if err != nil {
					s.logger.Warn("skip output with invalid value",
						zap.String("txid", tx.Txid), zap.Uint32("vout", vout.N), zap.Float64("value", vout.Value))
					continue
				}

				_, err = s.ledger.RecordTransaction(ctx, ledger.TransactionInput{
					AddressID:     rec.ID,
					TxID:          tx.Txid,
					Vout:          vout.N,
					Amount:        amount,
					Confirmations: confirmations,
					BlockHeight:   blockHeight,
					BlockHash:     blockHash,
				})
				if err != nil {
					return matched, fmt.Errorf("record %s:%d: %w", tx.Txid, vout.N, err)
				}
				matched++
				s.logger.Info("payment output observed",
					zap.String("order_id", rec.OrderID),
					zap.String("txid", tx.Txid),
					zap.Uint32("vout", vout.N),
					zap.Int64("amount", amount),
					zap.Float64("amount_btc", wallet.SatoshisToBTC(amount)),
					zap.Int64("confirmations", confirmations),
				)
			}
		}
	}
	return matched, nil
}

// reconcile refreshes confirmations of mined outputs and pushes the summed
// amount into the address record. The record is as confirmed as its least
// confirmed output.
func (s *Service) reconcile(ctx context.Context, rec model.AddressRecord, tip int64) error {
	txs, err := s.ledger.ListTransactions(ctx, rec.ID)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		return nil
	}

	minConfirmations := int64(math.MaxInt64)
	for _, tx := range txs {
		confirmations := tx.Confirmations
		if tx.BlockHeight != nil {
			if current := tip - *tx.BlockHeight + 1; current > confirmations {
				refreshed, err := s.ledger.RecordTransaction(ctx, ledger.TransactionInput{
					AddressID:     rec.ID,
					TxID:          tx.TxID,
					Vout:          tx.Vout,
					Amount:        tx.Amount,
					Confirmations: current,
					BlockHeight:   tx.BlockHeight,
					BlockHash:     tx.BlockHash,
				})
				if err != nil {
					return err
				}
				confirmations = refreshed.Confirmations
			}
		}
		minConfirmations = min(minConfirmations, confirmations)
	}

	total := model.SumAmounts(txs, nil)
	if total == rec.AmountReceived && minConfirmations <= rec.Confirmations {
		return nil
	}
	_, err = s.ledger.UpdateAddressPayment(ctx, rec.ID, total, minConfirmations, nil)
	return err
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.Wait(ctx, d, s.blockSignal)
}
