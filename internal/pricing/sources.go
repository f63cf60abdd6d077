package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

const maxResponseBytes = 1 << 20

type coinDeskResponse struct {
	BPI struct {
		USD *struct {
			Rate string `json:"rate"`
		} `json:"USD"`
	} `json:"bpi"`
}

type coinbaseResponse struct {
	Data *struct {
		Amount   string `json:"amount"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
}

type httpSource struct {
	name   string
	url    string
	client *http.Client
	parse  func(body []byte) (decimal.Decimal, error)
}

// NewCoinDeskSource quotes bpi.USD.rate from the CoinDesk current price endpoint.
func NewCoinDeskSource(url string, client *http.Client) Source {
	return &httpSource{name: "coindesk", url: url, client: client, parse: parseCoinDesk}
}

// NewCoinbaseSource quotes data.amount from the Coinbase spot price endpoint.
func NewCoinbaseSource(url string, client *http.Client) Source {
	return &httpSource{name: "coinbase", url: url, client: client, parse: parseCoinbase}
}

func (s *httpSource) Name() string {
	return s.name
}

func (s *httpSource) BTCUSD(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build %s request: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s request: %v", model.ErrExternalService, s.name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: %s returned status %d", model.ErrExternalService, s.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: read %s response: %v", model.ErrExternalService, s.name, err)
	}

	rate, err := s.parse(body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", model.ErrExternalService, s.name, err)
	}
	return rate, nil
}

func parseCoinDesk(body []byte) (decimal.Decimal, error) {
	var payload coinDeskResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("decode response: %w", err)
	}
	if payload.BPI.USD == nil {
		return decimal.Zero, fmt.Errorf("response has no bpi.USD")
	}
	return parseRate(strings.ReplaceAll(payload.BPI.USD.Rate, ",", ""))
}

func parseCoinbase(body []byte) (decimal.Decimal, error) {
	var payload coinbaseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("decode response: %w", err)
	}
	if payload.Data == nil {
		return decimal.Zero, fmt.Errorf("response has no data")
	}
	if payload.Data.Currency != "" && payload.Data.Currency != "USD" {
		return decimal.Zero, fmt.Errorf("unexpected quote currency %q", payload.Data.Currency)
	}
	return parseRate(payload.Data.Amount)
}

func parseRate(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty rate")
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q: %w", raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s", rate)
	}
	return rate, nil
}
