// Package checkout turns an externally created order into a payable one and
// applies invoice rail notifications back onto it.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/btcpay"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/pricing"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

// Method names the rail a payment was opened on.
type Method string

const (
	MethodInvoice Method = "invoice"
	MethodOnChain Method = "onchain"
)

// Request asks for a payment on an existing order. Exactly one of AmountSats
// and AmountUSD is expected; AmountSats wins when both are set.
type Request struct {
	OrderID     string
	AmountSats  int64
	AmountUSD   decimal.Decimal
	Description string
	BuyerEmail  string
}

// Payment is what the buyer needs to pay an order. RateUSD is the BTC/USD rate
// used for the conversion and stays zero when the amount was given in satoshis.
type Payment struct {
	OrderID    string
	Method     Method
	AmountSats int64
	RateUSD    decimal.Decimal
	Invoice    *model.Invoice
	Address    *model.AddressRecord
	PaymentURI string
}

// WebhookResult reports what a verified webhook did.
type WebhookResult struct {
	Event   btcpay.WebhookEvent
	Applied bool
	Status  model.OrderStatus
}

// Service orchestrates payment creation across the invoice rail and the address ledger.
type Service struct {
	ledger Ledger
	rail   InvoiceRail
	oracle PriceOracle
	orders OrderStore
	logger *zap.Logger
}

// NewService wires the checkout flow.
func NewService(ledger Ledger, rail InvoiceRail, oracle PriceOracle, orders OrderStore, logger *zap.Logger) (*Service, error) {
	if ledger == nil || rail == nil || oracle == nil || orders == nil {
		return nil, fmt.Errorf("%w: checkout requires ledger, invoice rail, price oracle and order store", model.ErrConfiguration)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger: ledger,
		rail:   rail,
		oracle: oracle,
		orders: orders,
		logger: logger.Named("checkout"),
	}, nil
}

// CreatePayment opens a payment for req.OrderID on the invoice rail when it is
// configured, and on a fresh on-chain address otherwise. An order that already has
// a payment gets that payment back. When opening the payment fails after this call
// started creating it, the order is deleted so no half-created order remains visible.
func (s *Service) CreatePayment(ctx context.Context, req Request) (Payment, error) {
	req.OrderID = strings.TrimSpace(req.OrderID)
	if req.OrderID == "" {
		return Payment{}, fmt.Errorf("%w: order id is required", model.ErrValidation)
	}

	railReady := s.rail.IsReady()
	existing, found, err := s.existingPayment(ctx, req.OrderID, railReady)
	if err != nil {
		return Payment{}, err
	}
	if found {
		s.logger.Info("payment already open",
			zap.String("order_id", existing.OrderID),
			zap.String("method", string(existing.Method)),
		)
		return existing, nil
	}

	payment, err := s.price(ctx, req)
	if err != nil {
		return Payment{}, err
	}

	payment, err = s.open(ctx, req, payment, railReady)
	switch {
	case errors.Is(err, model.ErrValidation):
		// A concurrent checkout for the same order got there first.
		if existing, found, lookupErr := s.existingPayment(ctx, req.OrderID, railReady); lookupErr == nil && found {
			return existing, nil
		}
		return Payment{}, err
	case err != nil:
		s.rollback(ctx, req.OrderID, err)
		return Payment{}, err
	}

	s.logger.Info("payment created",
		zap.String("order_id", payment.OrderID),
		zap.String("method", string(payment.Method)),
		zap.Int64("amount_sats", payment.AmountSats),
	)
	return payment, nil
}

func (s *Service) existingPayment(ctx context.Context, orderID string, railReady bool) (Payment, bool, error) {
	rec, err := s.ledger.GetAddressForOrder(ctx, orderID)
	switch {
	case err == nil:
		return onChainPayment(orderID, rec), true, nil
	case !errors.Is(err, model.ErrNotFound):
		return Payment{}, false, err
	}
	if !railReady {
		return Payment{}, false, nil
	}

	invoiceID, err := s.orders.InvoiceByOrderID(ctx, orderID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return Payment{}, false, nil
	case err != nil:
		return Payment{}, false, err
	}
	inv, err := s.rail.GetInvoice(ctx, invoiceID)
	if err != nil {
		return Payment{}, false, err
	}
	return Payment{
		OrderID:    orderID,
		Method:     MethodInvoice,
		AmountSats: invoiceSats(inv),
		Invoice:    &inv,
	}, true, nil
}

func (s *Service) price(ctx context.Context, req Request) (Payment, error) {
	payment := Payment{OrderID: req.OrderID, AmountSats: req.AmountSats}

	switch {
	case req.AmountSats > 0:
	case req.AmountSats < 0:
		return Payment{}, fmt.Errorf("%w: amount must be positive, got %d sats", model.ErrValidation, req.AmountSats)
	case req.AmountUSD.IsPositive():
		rate := s.oracle.GetBitcoinPrice(ctx)
		sats, err := pricing.ConvertUSD(req.AmountUSD, rate)
		if err != nil {
			return Payment{}, fmt.Errorf("convert %s USD: %w", req.AmountUSD, err)
		}
		payment.AmountSats = sats
		payment.RateUSD = rate
	default:
		return Payment{}, fmt.Errorf("%w: a positive amount in sats or USD is required", model.ErrValidation)
	}
	return payment, nil
}

func (s *Service) open(ctx context.Context, req Request, payment Payment, railReady bool) (Payment, error) {
	if railReady {
		inv, err := s.rail.CreateInvoice(ctx, btcpay.CreateInvoiceRequest{
			AmountSats:  payment.AmountSats,
			OrderID:     req.OrderID,
			Description: req.Description,
			BuyerEmail:  req.BuyerEmail,
		})
		if err != nil {
			return Payment{}, err
		}
		if err := s.orders.SetInvoice(ctx, req.OrderID, inv.ID); err != nil {
			return Payment{}, err
		}
		payment.Method = MethodInvoice
		payment.Invoice = &inv
		return payment, nil
	}

	rec, err := s.ledger.GenerateAddressForOrder(ctx, req.OrderID, payment.AmountSats)
	if err != nil {
		return Payment{}, err
	}
	opened := onChainPayment(req.OrderID, rec)
	opened.RateUSD = payment.RateUSD
	return opened, nil
}

func onChainPayment(orderID string, rec model.AddressRecord) Payment {
	return Payment{
		OrderID:    orderID,
		Method:     MethodOnChain,
		AmountSats: rec.AmountExpected,
		Address:    &rec,
		PaymentURI: wallet.PaymentURI(rec.Address, rec.AmountExpected),
	}
}

// invoiceSats reads the satoshi amount of a BTC-denominated invoice, zero otherwise.
func invoiceSats(inv model.Invoice) int64 {
	if !strings.EqualFold(inv.Currency, "BTC") {
		return 0
	}
	amount, err := decimal.NewFromString(inv.Amount)
	if err != nil {
		return 0
	}
	return amount.Shift(8).IntPart()
}

func (s *Service) rollback(ctx context.Context, orderID string, cause error) {
	if err := s.orders.Delete(context.WithoutCancel(ctx), orderID); err != nil {
		s.logger.Error("order rollback failed",
			zap.String("order_id", orderID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	s.logger.Warn("payment creation failed, order deleted",
		zap.String("order_id", orderID),
		zap.Error(cause),
	)
}

// ApplyWebhook authenticates a raw BTCPay delivery and applies its order status.
// Unknown event types, deliveries without an order id and deliveries that would move
// the order back to an earlier status are acknowledged without touching any order.
func (s *Service) ApplyWebhook(ctx context.Context, signatureHeader string, body []byte) (WebhookResult, error) {
	event := s.rail.VerifyWebhook(signatureHeader, body)
	if event == nil {
		return WebhookResult{}, model.ErrWebhookAuth
	}

	result := WebhookResult{Event: *event}
	status, ok := btcpay.MapWebhookTypeToOrderStatus(event.Type)
	if !ok {
		s.logger.Info("ignoring webhook with unknown type",
			zap.String("type", event.RawType),
			zap.String("invoice_id", event.InvoiceID),
		)
		return result, nil
	}
	if event.OrderID == "" {
		s.logger.Warn("ignoring webhook without order id",
			zap.String("type", event.RawType),
			zap.String("invoice_id", event.InvoiceID),
		)
		return result, nil
	}

	applied, err := s.orders.AdvanceStatus(ctx, event.OrderID, status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("webhook for unknown order", zap.String("order_id", event.OrderID))
		}
		return result, fmt.Errorf("apply %s to order %s: %w", event.RawType, event.OrderID, err)
	}
	if !applied {
		s.logger.Info("ignoring stale webhook",
			zap.String("type", event.RawType),
			zap.String("order_id", event.OrderID),
			zap.String("invoice_id", event.InvoiceID),
		)
		return result, nil
	}

	result.Applied = true
	result.Status = status
	s.logger.Info("order status updated from webhook",
		zap.String("order_id", event.OrderID),
		zap.String("invoice_id", event.InvoiceID),
		zap.String("status", string(status)),
	)
	return result, nil
}
