// Package pricing converts USD amounts to satoshis using live BTC/USD quotes.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/clock"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// DefaultFallbackRate is served when every source fails.
var DefaultFallbackRate = decimal.NewFromInt(45000)

var (
	satoshisPerBTC = decimal.New(1, 8)
	maxSupplySats  = decimal.NewFromInt(21_000_000).Mul(satoshisPerBTC)
)

// OracleConfig tunes the oracle.
type OracleConfig struct {
	Timeout      time.Duration
	CacheTTL     time.Duration
	RatePerSec   int
	FallbackRate decimal.Decimal
}

// Oracle quotes BTC/USD from the first healthy source and never fails: if every source
// is down it serves the fallback rate.
type Oracle struct {
	sources  []Source
	limiter  ratelimit.Limiter
	timeout  time.Duration
	ttl      time.Duration
	fallback decimal.Decimal
	metrics  Metrics
	clock    clock.Clock
	logger   *zap.Logger

	mu       sync.Mutex
	cached   decimal.Decimal
	cachedAt time.Time
}

// NewOracle builds an oracle over sources tried in order.
func NewOracle(cfg OracleConfig, sources []Source, metrics Metrics, logger *zap.Logger) (*Oracle, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: at least one price source is required", model.ErrConfiguration)
	}
	if metrics == nil {
		return nil, errors.New("price oracle metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fallback := cfg.FallbackRate
	if !fallback.IsPositive() {
		fallback = DefaultFallbackRate
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RatePerSec > 0 {
		limiter = ratelimit.New(cfg.RatePerSec)
	}

	return &Oracle{
		sources:  sources,
		limiter:  limiter,
		timeout:  timeout,
		ttl:      cfg.CacheTTL,
		fallback: fallback,
		metrics:  metrics,
		clock:    clock.System{},
		logger:   logger.Named("pricing"),
	}, nil
}

// GetBitcoinPrice returns the USD price of one bitcoin.
func (o *Oracle) GetBitcoinPrice(ctx context.Context) decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock.Now()
	if o.ttl > 0 && !o.cachedAt.IsZero() && now.Sub(o.cachedAt) < o.ttl {
		o.metrics.ObserveCacheHit()
		return o.cached
	}

	var errs []error
	for _, source := range o.sources {
		rate, err := o.fetch(ctx, source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		o.cached = rate
		o.cachedAt = now
		o.metrics.ObserveRate(rate.InexactFloat64())
		return rate
	}

	o.metrics.ObserveFallback()
	o.metrics.ObserveRate(o.fallback.InexactFloat64())
	o.logger.Warn("all price sources failed, using fallback rate",
		zap.String("fallback_rate", o.fallback.String()),
		zap.Error(errors.Join(errs...)),
	)
	return o.fallback
}

func (o *Oracle) fetch(ctx context.Context, source Source) (rate decimal.Decimal, err error) {
	o.limiter.Take()

	started := time.Now()
	defer func() {
		o.metrics.ObserveFetch(source.Name(), err, started)
	}()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	rate, err = source.BTCUSD(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", source.Name(), err)
	}
	if !rate.IsPositive() {
		err = fmt.Errorf("%s: non-positive rate %s", source.Name(), rate)
		return decimal.Zero, err
	}
	return rate, nil
}

// UsdToSatoshis converts a positive USD amount to satoshis at the current rate,
// rounded to the nearest satoshi.
func (o *Oracle) UsdToSatoshis(ctx context.Context, usd decimal.Decimal) (int64, error) {
	if !usd.IsPositive() {
		return 0, fmt.Errorf("%w: usd amount must be positive, got %s", model.ErrValidation, usd)
	}
	return ConvertUSD(usd, o.GetBitcoinPrice(ctx))
}

// ConvertUSD converts usd to satoshis at rate.
func ConvertUSD(usd, rate decimal.Decimal) (int64, error) {
	if !rate.IsPositive() {
		return 0, fmt.Errorf("%w: rate must be positive", model.ErrValidation)
	}
	sats := usd.Mul(satoshisPerBTC).DivRound(rate, 0)
	if !sats.IsPositive() {
		return 0, fmt.Errorf("%w: %s USD is below one satoshi", model.ErrValidation, usd)
	}
	if sats.GreaterThan(maxSupplySats) {
		return 0, fmt.Errorf("%w: %s USD exceeds the bitcoin supply", model.ErrValidation, usd)
	}
	return sats.IntPart(), nil
}
