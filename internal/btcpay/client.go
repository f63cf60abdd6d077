// Package btcpay is the hosted-invoice payment rail backed by a BTCPay Server store.
package btcpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

const (
	speedPolicy       = "MediumSpeed"
	expirationMinutes = 30
	monitoringMinutes = 1440
	invoiceCurrency   = "BTC"
	maxResponseBytes  = 1 << 20
)

// Config carries the four values the rail needs. All of them must be set.
type Config struct {
	ServerURL     string
	StoreID       string
	APIKey        string
	WebhookSecret string
}

// CreateInvoiceRequest describes an invoice for one order.
type CreateInvoiceRequest struct {
	AmountSats  int64
	OrderID     string
	Description string
	BuyerEmail  string
}

// Client talks to the BTCPay Greenfield API of a single store.
type Client struct {
	cfg        Config
	httpClient *http.Client
	metrics    Metrics
	logger     *zap.Logger
}

// NewClient constructs a Client. A nil httpClient falls back to one with a 10s timeout.
func NewClient(cfg Config, httpClient *http.Client, metrics Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger.Named("btcpay"),
	}
}

// IsReady reports whether server URL, store id, API key and webhook secret are all present.
func (c *Client) IsReady() bool {
	return c.cfg.ServerURL != "" &&
		c.cfg.StoreID != "" &&
		c.cfg.APIKey != "" &&
		c.cfg.WebhookSecret != ""
}

type checkoutOptions struct {
	SpeedPolicy       string `json:"speedPolicy"`
	ExpirationMinutes int    `json:"expirationMinutes"`
	MonitoringMinutes int    `json:"monitoringMinutes"`
}

type createInvoicePayload struct {
	Amount   string          `json:"amount"`
	Currency string          `json:"currency"`
	Metadata invoiceMetadata `json:"metadata"`
	Checkout checkoutOptions `json:"checkout"`
}

type invoiceResponse struct {
	ID           string          `json:"id"`
	CheckoutLink string          `json:"checkoutLink"`
	Status       string          `json:"status"`
	Amount       string          `json:"amount"`
	Currency     string          `json:"currency"`
	Metadata     invoiceMetadata `json:"metadata"`
}

func (r invoiceResponse) toModel() model.Invoice {
	return model.Invoice{
		ID:           r.ID,
		CheckoutLink: r.CheckoutLink,
		Status:       r.Status,
		Amount:       r.Amount,
		Currency:     r.Currency,
		OrderID:      r.Metadata.OrderID,
	}
}

// CreateInvoice opens a hosted invoice for the order amount in BTC.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (inv model.Invoice, err error) {
	if !c.IsReady() {
		return model.Invoice{}, model.ErrInvoiceRailDisabled
	}
	if req.AmountSats <= 0 {
		return model.Invoice{}, fmt.Errorf("%w: invoice amount must be positive, got %d", model.ErrValidation, req.AmountSats)
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return model.Invoice{}, fmt.Errorf("%w: order id is required", model.ErrValidation)
	}

	started := time.Now()
	defer func() {
		c.metrics.Observe("create_invoice", err, started)
	}()

	payload := createInvoicePayload{
		Amount:   wallet.FormatBTC(req.AmountSats),
		Currency: invoiceCurrency,
		Metadata: invoiceMetadata{
			OrderID:    req.OrderID,
			ItemDesc:   req.Description,
			BuyerEmail: req.BuyerEmail,
		},
		Checkout: checkoutOptions{
			SpeedPolicy:       speedPolicy,
			ExpirationMinutes: expirationMinutes,
			MonitoringMinutes: monitoringMinutes,
		},
	}

	var resp invoiceResponse
	if err = c.do(ctx, http.MethodPost, c.invoicesURL(), payload, &resp); err != nil {
		return model.Invoice{}, fmt.Errorf("create invoice for order %s: %w", req.OrderID, err)
	}
	if resp.ID == "" {
		err = fmt.Errorf("%w: btcpay returned an invoice without id", model.ErrExternalService)
		return model.Invoice{}, err
	}

	c.logger.Info("invoice created",
		zap.String("order_id", req.OrderID),
		zap.String("invoice_id", resp.ID),
		zap.String("amount", resp.Amount),
	)
	return resp.toModel(), nil
}

// GetInvoice fetches the current state of an invoice.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (inv model.Invoice, err error) {
	if !c.IsReady() {
		return model.Invoice{}, model.ErrInvoiceRailDisabled
	}
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return model.Invoice{}, fmt.Errorf("%w: invoice id is required", model.ErrValidation)
	}

	started := time.Now()
	defer func() {
		c.metrics.Observe("get_invoice", err, started)
	}()

	var resp invoiceResponse
	if err = c.do(ctx, http.MethodGet, c.invoicesURL()+"/"+url.PathEscape(invoiceID), nil, &resp); err != nil {
		return model.Invoice{}, fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}
	return resp.toModel(), nil
}

func (c *Client) invoicesURL() string {
	return c.cfg.ServerURL + "/api/v1/stores/" + url.PathEscape(c.cfg.StoreID) + "/invoices"
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: btcpay request: %v", model.ErrExternalService, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read btcpay response: %v", model.ErrExternalService, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && method == http.MethodGet:
		return fmt.Errorf("%w: btcpay returned status %d", model.ErrNotFound, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: btcpay returned status %d", model.ErrExternalService, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode btcpay response: %v", model.ErrExternalService, err)
	}
	return nil
}
