package postgres

import (
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

func (s *RepositorySuite) TestApplyPayment_Scenario() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := s.seedAddress(newAddress("ord_1", 0, 100_000, now))
	first := model.Outpoint{TxID: txid(0xaa), Vout: 0}
	second := model.Outpoint{TxID: txid(0xbb), Vout: 1}

	s.expectObserve("apply_payment", 4)
	s.expectObserve("transactions_by_address", 1)

	update, err := s.repo.ApplyPayment(s.testCtx, rec.ID, model.PaymentObservation{AmountReceived: 40_000}, &first, now.Add(time.Minute))
	s.Require().NoError(err)
	s.True(update.Changed)
	s.Equal(model.PaymentPending, update.Previous.Status)
	s.Equal(model.PaymentPartial, update.Current.Status)
	s.Require().NotNil(update.Transaction)
	s.Equal(int64(40_000), update.Transaction.Amount)
	s.Nil(update.Transaction.ConfirmedAt)

	update, err = s.repo.ApplyPayment(s.testCtx, rec.ID, model.PaymentObservation{AmountReceived: 100_000, Confirmations: 1}, &second, now.Add(2*time.Minute))
	s.Require().NoError(err)
	s.Equal(model.PaymentPaid, update.Current.Status)
	s.Require().NotNil(update.Current.ConfirmedAt)
	s.Require().NotNil(update.Transaction)
	s.Equal(int64(60_000), update.Transaction.Amount)
	s.NotNil(update.Transaction.ConfirmedAt)

	// Re-delivery of the first output with a lower total changes nothing.
	update, err = s.repo.ApplyPayment(s.testCtx, rec.ID, model.PaymentObservation{AmountReceived: 40_000}, &first, now.Add(3*time.Minute))
	s.Require().NoError(err)
	s.False(update.Changed)
	s.Equal(model.PaymentPaid, update.Current.Status)
	s.Equal(int64(100_000), update.Current.AmountReceived)
	s.Equal(int64(40_000), update.Transaction.Amount)

	update, err = s.repo.ApplyPayment(s.testCtx, rec.ID, model.PaymentObservation{AmountReceived: 100_000, Confirmations: 3}, nil, now.Add(4*time.Minute))
	s.Require().NoError(err)
	s.True(update.Changed)
	s.Equal(int64(3), update.Current.Confirmations)
	s.Nil(update.Transaction)

	txs, err := s.repo.TransactionsByAddress(s.testCtx, rec.ID)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal(int64(100_000), model.SumAmounts(txs, nil))
}

func (s *RepositorySuite) TestApplyPayment_NotFound() {
	s.expectObserve("apply_payment", 1)

	_, err := s.repo.ApplyPayment(s.testCtx, 999, model.PaymentObservation{AmountReceived: 1}, nil, time.Now())
	s.True(errors.Is(err, model.ErrNotFound), "got %v", err)
}

func (s *RepositorySuite) TestApplyPayment_ConcurrentUpdatesKeepMaximum() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := s.seedAddress(newAddress("ord_1", 0, 1_000, now))

	const writers = 20
	s.expectObserve("apply_payment", writers)
	s.expectObserve("address_by_id", 1)

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			_, err := s.repo.ApplyPayment(s.testCtx, rec.ID, model.PaymentObservation{AmountReceived: amount * 50}, nil, now)
			errs <- err
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	stored, err := s.repo.AddressByID(s.testCtx, rec.ID)
	s.Require().NoError(err)
	s.Equal(int64(1_000), stored.AmountReceived)
	s.Equal(model.PaymentPaid, stored.Status)
	s.NotNil(stored.FirstSeen)
}
