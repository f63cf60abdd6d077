package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/btcpay"
	"github.com/goodnatureofminers/btcpayments-backend/internal/checkout"
	"github.com/goodnatureofminers/btcpayments-backend/internal/clock"
	"github.com/goodnatureofminers/btcpayments-backend/internal/config"
	"github.com/goodnatureofminers/btcpayments-backend/internal/custody"
	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/metrics"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/orders"
	"github.com/goodnatureofminers/btcpayments-backend/internal/pricing"
	"github.com/goodnatureofminers/btcpayments-backend/internal/repository/postgres"
	"github.com/goodnatureofminers/btcpayments-backend/internal/transport/httpapi"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

func main() {
	cfg := config.Payments{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("payments api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Payments, logger *zap.Logger) error {
	network := model.Network(cfg.Wallet.Network)

	hd, err := wallet.New(wallet.Config{
		Mnemonic:   cfg.Wallet.Mnemonic,
		Passphrase: cfg.Wallet.Passphrase,
		Network:    network,
	})
	if err != nil {
		return fmt.Errorf("init wallet: %w", err)
	}
	sealer, err := custody.NewSealer(cfg.Custody.EncryptionSecret)
	if err != nil {
		return fmt.Errorf("init key sealer: %w", err)
	}

	db, err := postgres.Open(cfg.Postgres.DSN, postgres.Options{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	repoMetrics := metrics.NewPostgresRepository(network)
	ledgerSvc, err := ledger.NewService(
		hd,
		sealer,
		postgres.NewRepository(db, repoMetrics),
		metrics.NewLedger(network),
		clock.System{},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}

	oracle, err := newOracle(cfg.Pricing, logger)
	if err != nil {
		return fmt.Errorf("init price oracle: %w", err)
	}

	rail := btcpay.NewClient(btcpay.Config{
		ServerURL:     cfg.BTCPay.ServerURL,
		StoreID:       cfg.BTCPay.StoreID,
		APIKey:        cfg.BTCPay.APIKey,
		WebhookSecret: cfg.BTCPay.WebhookSecret,
	}, &http.Client{Timeout: cfg.BTCPay.Timeout}, metrics.NewBTCPayClient(), logger)

	orderStore := orders.NewStore(db, repoMetrics)
	checkoutSvc, err := checkout.NewService(ledgerSvc, rail, oracle, orderStore, logger)
	if err != nil {
		return fmt.Errorf("init checkout: %w", err)
	}

	deps := httpapi.Deps{
		Ledger:   ledgerSvc,
		Checkout: checkoutSvc,
		Prices:   oracle,
		Wallet:   hd,
		Network:  string(network),
	}
	if rail.IsReady() {
		deps.Invoices = rail
		deps.InvoiceLinks = orderStore
	}
	logger.Info("payment rails configured",
		zap.String("network", string(network)),
		zap.Bool("btcpay", rail.IsReady()),
	)

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewRouter(httpapi.NewHandler(deps, logger), cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return serve(ctx, cfg.HTTP.Addr, handler, logger)
}

func newOracle(cfg config.Pricing, logger *zap.Logger) (*pricing.Oracle, error) {
	fallback, err := cfg.Fallback()
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	sources := make([]pricing.Source, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		switch name {
		case "coindesk":
			sources = append(sources, pricing.NewCoinDeskSource(cfg.CoinDeskURL, client))
		case "coinbase":
			sources = append(sources, pricing.NewCoinbaseSource(cfg.CoinbaseURL, client))
		default:
			return nil, fmt.Errorf("%w: unknown price source %q", model.ErrConfiguration, name)
		}
	}

	return pricing.NewOracle(pricing.OracleConfig{
		Timeout:      cfg.Timeout,
		CacheTTL:     cfg.CacheTTL,
		RatePerSec:   cfg.RatePerSec,
		FallbackRate: fallback,
	}, sources, metrics.NewPriceOracle(), logger)
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting http server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
