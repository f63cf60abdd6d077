package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source quotes the BTC/USD rate from one upstream.
	Source interface {
		Name() string
		BTCUSD(ctx context.Context) (decimal.Decimal, error)
	}
	Metrics interface {
		ObserveFetch(source string, err error, started time.Time)
		ObserveFallback()
		ObserveCacheHit()
		ObserveRate(rate float64)
	}
)
