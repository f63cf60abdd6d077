package postgres

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

func (s *RepositorySuite) TestUpsertTransaction_Idempotent() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := s.seedAddress(newAddress("ord_1", 0, 100_000, now))
	out := model.Outpoint{TxID: txid(0x01), Vout: 2}
	height := int64(812_000)
	hash := txid(0xfe)

	s.expectObserve("upsert_transaction", 4)
	s.expectObserve("transactions_by_address", 1)

	first, err := s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(rec.ID, out, 5_000, 0, nil, nil, now))
	s.Require().NoError(err)
	s.Equal(int64(0), first.Confirmations)
	s.Nil(first.ConfirmedAt)

	confirmed, err := s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(rec.ID, out, 5_000, 2, &height, &hash, now.Add(time.Minute)))
	s.Require().NoError(err)
	s.Equal(first.ID, confirmed.ID)
	s.Equal(int64(2), confirmed.Confirmations)
	s.Require().NotNil(confirmed.BlockHeight)
	s.Equal(height, *confirmed.BlockHeight)
	s.Require().NotNil(confirmed.ConfirmedAt)

	staleHeight := int64(1)
	stale, err := s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(rec.ID, out, 9_999, 1, &staleHeight, nil, now.Add(time.Hour)))
	s.Require().NoError(err)
	s.Equal(int64(2), stale.Confirmations)
	s.Equal(height, *stale.BlockHeight)
	s.Equal(int64(5_000), stale.Amount)
	s.True(confirmed.ConfirmedAt.Equal(*stale.ConfirmedAt))

	_, err = s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(rec.ID+100, model.Outpoint{TxID: txid(0x02)}, 1, 0, nil, nil, now))
	s.True(errors.Is(err, model.ErrNotFound), "got %v", err)

	txs, err := s.repo.TransactionsByAddress(s.testCtx, rec.ID)
	s.Require().NoError(err)
	s.Len(txs, 1)
}

func (s *RepositorySuite) TestUpsertTransaction_RejectsOutputOfAnotherAddress() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := s.seedAddress(newAddress("ord_1", 0, 100_000, now))
	other := s.seedAddress(newAddress("ord_2", 1, 100_000, now))
	out := model.Outpoint{TxID: txid(0x03), Vout: 0}
	height := int64(812_000)

	s.expectObserve("upsert_transaction", 2)
	s.expectObserve("apply_payment", 1)
	s.expectObserve("transactions_by_address", 2)

	_, err := s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(owner.ID, out, 5_000, 0, nil, nil, now))
	s.Require().NoError(err)

	_, err = s.repo.UpsertTransaction(s.testCtx, model.NewTransactionRecord(other.ID, out, 5_000, 3, &height, nil, now))
	s.True(errors.Is(err, model.ErrValidation), "got %v", err)

	_, err = s.repo.ApplyPayment(s.testCtx, other.ID, model.PaymentObservation{AmountReceived: 5_000}, &out, now)
	s.True(errors.Is(err, model.ErrValidation), "got %v", err)

	owned, err := s.repo.TransactionsByAddress(s.testCtx, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(int64(0), owned[0].Confirmations)
	s.Nil(owned[0].BlockHeight)

	foreign, err := s.repo.TransactionsByAddress(s.testCtx, other.ID)
	s.Require().NoError(err)
	s.Empty(foreign)
}
