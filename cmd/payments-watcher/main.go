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

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/clock"
	"github.com/goodnatureofminers/btcpayments-backend/internal/config"
	"github.com/goodnatureofminers/btcpayments-backend/internal/custody"
	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/metrics"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/btcpayments-backend/internal/repository/postgres"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
	"github.com/goodnatureofminers/btcpayments-backend/internal/watcher"
)

func main() {
	cfg := config.WatcherService{}

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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("payments watcher failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.WatcherService, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.Watcher.MetricsAddr, logger)

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

	ledgerSvc, err := ledger.NewService(
		hd,
		sealer,
		postgres.NewRepository(db, metrics.NewPostgresRepository(network)),
		metrics.NewLedger(network),
		clock.System{},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}

	node, err := rpcclient.Dial(rpcclient.Config{
		Host:       cfg.Node.Host,
		User:       cfg.Node.User,
		Pass:       cfg.Node.Pass,
		DisableTLS: cfg.Node.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("init node rpc client: %w", err)
	}
	chain := rpcclient.NewObservedClient(node, metrics.NewRPCClient(network))
	defer func() {
		chain.Shutdown()
		node.WaitForShutdown()
	}()

	blockSignal, err := startBlockSignal(ctx, cfg.Node.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}

	svc, err := watcher.NewService(
		chain,
		ledgerSvc,
		metrics.NewWatcher(network),
		watcher.Config{
			Params:       hd.Params(),
			PollInterval: cfg.Watcher.PollInterval,
			MaxBackoff:   cfg.Watcher.MaxBackoff,
			Lookback:     cfg.Watcher.Lookback,
			Workers:      cfg.Watcher.Workers,
			ScanMempool:  cfg.Watcher.ScanMempool,
		},
		logger,
		blockSignal,
	)
	if err != nil {
		return err
	}

	logger.Info("starting payments watcher",
		zap.String("network", string(network)),
		zap.String("node", cfg.Node.Host),
		zap.Bool("block_signal", blockSignal != nil),
	)
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
