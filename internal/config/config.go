// Package config holds the command line and environment configuration shared by
// the payment binaries.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

// Wallet configures the HD wallet engine.
type Wallet struct {
	Mnemonic   string `long:"mnemonic" env:"MNEMONIC" description:"BIP39 mnemonic of the payment wallet"`
	Passphrase string `long:"passphrase" env:"PASSPHRASE" description:"optional BIP39 passphrase"`
	Network    string `long:"network" env:"NETWORK" description:"bitcoin network (mainnet, testnet, regtest, signet)" default:"mainnet"`
}

// Custody configures private key sealing.
type Custody struct {
	EncryptionSecret string `long:"encryption-secret" env:"ENCRYPTION_SECRET" description:"secret used to seal derived private keys"`
}

// BTCPay configures the hosted invoice rail. It is enabled only when all four values are set.
type BTCPay struct {
	ServerURL     string        `long:"server-url" env:"SERVER_URL" description:"BTCPay server base URL"`
	StoreID       string        `long:"store-id" env:"STORE_ID" description:"BTCPay store id"`
	APIKey        string        `long:"api-key" env:"API_KEY" description:"BTCPay Greenfield API key"`
	WebhookSecret string        `long:"webhook-secret" env:"WEBHOOK_SECRET" description:"BTCPay webhook HMAC secret"`
	Timeout       time.Duration `long:"timeout" env:"TIMEOUT" description:"BTCPay request timeout" default:"10s"`
}

// Pricing configures the BTC/USD price oracle.
type Pricing struct {
	Sources      []string      `long:"source" env:"SOURCES" env-delim:"," description:"price sources in priority order" default:"coindesk" default:"coinbase"`
	CoinDeskURL  string        `long:"coindesk-url" env:"COINDESK_URL" description:"CoinDesk current price endpoint" default:"https://api.coindesk.com/v1/bpi/currentprice/USD.json"`
	CoinbaseURL  string        `long:"coinbase-url" env:"COINBASE_URL" description:"Coinbase spot price endpoint" default:"https://api.coinbase.com/v2/prices/BTC-USD/spot"`
	Timeout      time.Duration `long:"timeout" env:"TIMEOUT" description:"per-source request timeout" default:"5s"`
	CacheTTL     time.Duration `long:"cache-ttl" env:"CACHE_TTL" description:"how long a fetched rate is reused" default:"60s"`
	RatePerSec   int           `long:"rate-per-sec" env:"RATE_PER_SEC" description:"outbound price requests per second" default:"2"`
	FallbackRate string        `long:"fallback-rate" env:"FALLBACK_RATE" description:"USD rate used when every source fails" default:"45000"`
}

// Postgres configures the ledger database.
type Postgres struct {
	DSN             string        `long:"dsn" env:"DSN" description:"postgres DSN"`
	MaxOpenConns    int           `long:"max-open-conns" env:"MAX_OPEN_CONNS" description:"max open connections" default:"10"`
	MaxIdleConns    int           `long:"max-idle-conns" env:"MAX_IDLE_CONNS" description:"max idle connections" default:"5"`
	ConnMaxLifetime time.Duration `long:"conn-max-lifetime" env:"CONN_MAX_LIFETIME" description:"max connection lifetime" default:"5m"`
}

// HTTP configures the API listener.
type HTTP struct {
	Addr        string   `long:"addr" env:"ADDR" description:"HTTP listen address" default:":8080"`
	CORSOrigins []string `long:"cors-origin" env:"CORS_ORIGINS" env-delim:"," description:"allowed CORS origins" default:"*"`
}

// Node addresses the bitcoin node the watcher follows.
type Node struct {
	Host       string `long:"host" env:"HOST" description:"node RPC host:port" default:"127.0.0.1:8332"`
	User       string `long:"user" env:"USER" description:"node RPC username"`
	Pass       string `long:"pass" env:"PASS" description:"node RPC password"`
	DisableTLS bool   `long:"disable-tls" env:"DISABLE_TLS" description:"talk plain HTTP to the node"`
	ZMQAddr    string `long:"zmq-addr" env:"ZMQ_ADDR" description:"optional zmq hashblock endpoint used to wake the watcher"`
}

// Watcher tunes the chain watcher loop.
type Watcher struct {
	PollInterval time.Duration `long:"poll-interval" env:"POLL_INTERVAL" description:"delay between iterations" default:"30s"`
	MaxBackoff   time.Duration `long:"max-backoff" env:"MAX_BACKOFF" description:"upper bound of the retry delay after failures" default:"5m"`
	Lookback     int64         `long:"lookback" env:"LOOKBACK" description:"blocks rescanned on startup" default:"144"`
	Workers      int           `long:"workers" env:"WORKERS" description:"concurrent address reconciliations" default:"8"`
	ScanMempool  bool          `long:"scan-mempool" env:"SCAN_MEMPOOL" description:"also record unconfirmed outputs"`
	MetricsAddr  string        `long:"metrics-addr" env:"METRICS_ADDR" description:"address of the metrics server" default:":2112"`
}

// Enabled reports whether every BTCPay value is present.
func (b BTCPay) Enabled() bool {
	return b.ServerURL != "" && b.StoreID != "" && b.APIKey != "" && b.WebhookSecret != ""
}

func (b BTCPay) partial() bool {
	set := 0
	for _, v := range []string{b.ServerURL, b.StoreID, b.APIKey, b.WebhookSecret} {
		if v != "" {
			set++
		}
	}
	return set > 0 && set < 4
}

// Validate checks the wallet configuration.
func (w Wallet) Validate() error {
	var errs []error
	mnemonic := strings.Join(strings.Fields(w.Mnemonic), " ")
	switch {
	case mnemonic == "":
		errs = append(errs, fmt.Errorf("%w: wallet mnemonic is required", model.ErrConfiguration))
	case !bip39.IsMnemonicValid(mnemonic):
		errs = append(errs, fmt.Errorf("%w: wallet mnemonic is not a valid BIP39 phrase", model.ErrConfiguration))
	}
	if _, err := wallet.ParamsForNetwork(model.Network(w.Network)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the custody configuration.
func (c Custody) Validate() error {
	if strings.TrimSpace(c.EncryptionSecret) == "" {
		return fmt.Errorf("%w: key encryption secret is required", model.ErrConfiguration)
	}
	return nil
}

// Validate rejects a partially configured invoice rail.
func (b BTCPay) Validate() error {
	if b.partial() {
		return fmt.Errorf("%w: btcpay requires server url, store id, api key and webhook secret together", model.ErrConfiguration)
	}
	if !b.Enabled() {
		return nil
	}
	u, err := url.Parse(b.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: btcpay server url %q is not an http(s) url", model.ErrConfiguration, b.ServerURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("%w: btcpay timeout must be positive", model.ErrConfiguration)
	}
	return nil
}

// Validate checks the pricing configuration.
func (p Pricing) Validate() error {
	var errs []error
	if len(p.Sources) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one price source is required", model.ErrConfiguration))
	}
	for _, source := range p.Sources {
		switch source {
		case "coindesk", "coinbase":
		default:
			errs = append(errs, fmt.Errorf("%w: unknown price source %q", model.ErrConfiguration, source))
		}
	}
	if p.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: price timeout must be positive", model.ErrConfiguration))
	}
	if p.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: price cache ttl must not be negative", model.ErrConfiguration))
	}
	if p.RatePerSec <= 0 {
		errs = append(errs, fmt.Errorf("%w: price rate limit must be positive", model.ErrConfiguration))
	}
	if _, err := p.Fallback(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Fallback parses the fallback USD rate.
func (p Pricing) Fallback() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(p.FallbackRate)
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: fallback rate %q must be a positive number", model.ErrConfiguration, p.FallbackRate)
	}
	return rate, nil
}

// Validate checks the database configuration.
func (p Postgres) Validate() error {
	if p.DSN == "" {
		return fmt.Errorf("%w: postgres dsn is required", model.ErrConfiguration)
	}
	return nil
}

// Validate checks the listener configuration.
func (h HTTP) Validate() error {
	if strings.TrimSpace(h.Addr) == "" {
		return fmt.Errorf("%w: http listen address is required", model.ErrConfiguration)
	}
	return nil
}

// Validate checks the node configuration.
func (n Node) Validate() error {
	if strings.TrimSpace(n.Host) == "" {
		return fmt.Errorf("%w: node rpc host is required", model.ErrConfiguration)
	}
	return nil
}

// Validate checks the watcher tuning.
func (w Watcher) Validate() error {
	var errs []error
	if w.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: watcher poll interval must be positive", model.ErrConfiguration))
	}
	if w.MaxBackoff < w.PollInterval {
		errs = append(errs, fmt.Errorf("%w: watcher max backoff must not be below the poll interval", model.ErrConfiguration))
	}
	if w.Lookback <= 0 {
		errs = append(errs, fmt.Errorf("%w: watcher lookback must be positive", model.ErrConfiguration))
	}
	if w.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: watcher workers must be positive", model.ErrConfiguration))
	}
	return errors.Join(errs...)
}

// Payments is the full configuration of the payment core.
type Payments struct {
	Wallet   Wallet   `group:"wallet" namespace:"wallet" env-namespace:"BTC_WALLET"`
	Custody  Custody  `group:"custody" namespace:"custody" env-namespace:"BTC_CUSTODY"`
	BTCPay   BTCPay   `group:"btcpay" namespace:"btcpay" env-namespace:"BTCPAY"`
	Pricing  Pricing  `group:"pricing" namespace:"pricing" env-namespace:"BTC_PRICING"`
	Postgres Postgres `group:"postgres" namespace:"postgres" env-namespace:"POSTGRES"`
	HTTP     HTTP     `group:"http" namespace:"http" env-namespace:"PAYMENTS_HTTP"`
}

// Validate returns every configuration problem at once, each wrapping model.ErrConfiguration.
func (p Payments) Validate() error {
	return errors.Join(
		p.Wallet.Validate(),
		p.Custody.Validate(),
		p.BTCPay.Validate(),
		p.Pricing.Validate(),
		p.Postgres.Validate(),
		p.HTTP.Validate(),
	)
}

// WatcherService is the configuration of the chain watcher binary. It needs the
// wallet and custody settings because the ledger it drives is built from them.
type WatcherService struct {
	Wallet   Wallet   `group:"wallet" namespace:"wallet" env-namespace:"BTC_WALLET"`
	Custody  Custody  `group:"custody" namespace:"custody" env-namespace:"BTC_CUSTODY"`
	Postgres Postgres `group:"postgres" namespace:"postgres" env-namespace:"POSTGRES"`
	Node     Node     `group:"node" namespace:"node" env-namespace:"BTC_NODE"`
	Watcher  Watcher  `group:"watcher" namespace:"watcher" env-namespace:"BTC_WATCHER"`
}

// Validate returns every configuration problem at once.
func (w WatcherService) Validate() error {
	return errors.Join(
		w.Wallet.Validate(),
		w.Custody.Validate(),
		w.Postgres.Validate(),
		w.Node.Validate(),
		w.Watcher.Validate(),
	)
}
