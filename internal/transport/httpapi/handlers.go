package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcpayments-backend/internal/btcpay"
	"github.com/goodnatureofminers/btcpayments-backend/internal/checkout"
	"github.com/goodnatureofminers/btcpayments-backend/internal/ledger"
	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
	"github.com/goodnatureofminers/btcpayments-backend/internal/wallet"
)

const maxWebhookBytes = 1 << 20

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Time: time.Now().UTC()})
}

type checkoutRequest struct {
	OrderID     string          `json:"orderId"`
	AmountSats  int64           `json:"amountSats"`
	AmountUSD   decimal.Decimal `json:"amountUsd"`
	Description string          `json:"description"`
	BuyerEmail  string          `json:"buyerEmail"`
}

type paymentResponse struct {
	OrderID    string               `json:"orderId"`
	Method     checkout.Method      `json:"method"`
	AmountSats int64                `json:"amountSats"`
	AmountBTC  string               `json:"amountBtc"`
	RateUSD    *decimal.Decimal     `json:"rateUsd,omitempty"`
	Invoice    *model.Invoice       `json:"invoice,omitempty"`
	Address    *model.AddressRecord `json:"address,omitempty"`
	PaymentURI string               `json:"paymentUri,omitempty"`
}

func newPaymentResponse(p checkout.Payment) paymentResponse {
	resp := paymentResponse{
		OrderID:    p.OrderID,
		Method:     p.Method,
		AmountSats: p.AmountSats,
		AmountBTC:  wallet.FormatBTC(p.AmountSats),
		Invoice:    p.Invoice,
		Address:    p.Address,
		PaymentURI: p.PaymentURI,
	}
	if !p.RateUSD.IsZero() {
		rate := p.RateUSD
		resp.RateUSD = &rate
	}
	return resp
}

func (h *Handler) createPayment(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	payment, err := h.deps.Checkout.CreatePayment(c.Request.Context(), checkout.Request{
		OrderID:     req.OrderID,
		AmountSats:  req.AmountSats,
		AmountUSD:   req.AmountUSD,
		Description: req.Description,
		BuyerEmail:  req.BuyerEmail,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPaymentResponse(payment))
}

type generateAddressRequest struct {
	AmountSats int64 `json:"amountSats"`
}

type addressResponse struct {
	model.AddressRecord
	AmountExpectedBTC string `json:"amountExpectedBtc"`
	AmountReceivedBTC string `json:"amountReceivedBtc"`
	PaymentURI        string `json:"paymentUri"`
	OrderStatus       string `json:"orderStatus"`
}

func newAddressResponse(rec model.AddressRecord) addressResponse {
	return addressResponse{
		AddressRecord:     rec,
		AmountExpectedBTC: wallet.FormatBTC(rec.AmountExpected),
		AmountReceivedBTC: wallet.FormatBTC(rec.AmountReceived),
		PaymentURI:        wallet.PaymentURI(rec.Address, rec.AmountExpected),
		OrderStatus:       string(rec.OrderStatus()),
	}
}

func (h *Handler) generateAddress(c *gin.Context) {
	var req generateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	rec, err := h.deps.Ledger.GenerateAddressForOrder(c.Request.Context(), c.Param("orderID"), req.AmountSats)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAddressResponse(rec))
}

type orderPaymentResponse struct {
	OrderID      string                    `json:"orderId"`
	Method       checkout.Method           `json:"method"`
	Address      *addressResponse          `json:"address,omitempty"`
	Transactions []model.TransactionRecord `json:"transactions,omitempty"`
	Invoice      *model.Invoice            `json:"invoice,omitempty"`
}

func (h *Handler) orderPayment(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("orderID")

	rec, err := h.deps.Ledger.GetAddressForOrder(ctx, orderID)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound) && h.deps.InvoiceLinks != nil && h.deps.Invoices != nil:
		h.orderInvoice(c, orderID, err)
		return
	default:
		writeError(c, err)
		return
	}

	txs, err := h.deps.Ledger.ListTransactions(ctx, rec.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if txs == nil {
		txs = []model.TransactionRecord{}
	}

	addr := newAddressResponse(rec)
	c.JSON(http.StatusOK, orderPaymentResponse{
		OrderID:      orderID,
		Method:       checkout.MethodOnChain,
		Address:      &addr,
		Transactions: txs,
	})
}

func (h *Handler) orderInvoice(c *gin.Context, orderID string, notFound error) {
	ctx := c.Request.Context()

	invoiceID, err := h.deps.InvoiceLinks.InvoiceByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			err = notFound
		}
		writeError(c, err)
		return
	}
	inv, err := h.deps.Invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderPaymentResponse{
		OrderID: orderID,
		Method:  checkout.MethodInvoice,
		Invoice: &inv,
	})
}

func (h *Handler) activeAddresses(c *gin.Context) {
	records, err := h.deps.Ledger.GetActiveAddresses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]addressResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newAddressResponse(rec))
	}
	c.JSON(http.StatusOK, gin.H{"addresses": resp})
}

type updatePaymentRequest struct {
	AmountReceived *int64  `json:"amountReceived"`
	Confirmations  int64   `json:"confirmations"`
	TxID           string  `json:"txid"`
	Vout           *uint32 `json:"vout"`
}

func (h *Handler) updateAddressPayment(c *gin.Context) {
	addressID, ok := addressIDParam(c)
	if !ok {
		return
	}
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.AmountReceived == nil {
		badRequest(c, "amountReceived is required")
		return
	}

	var outpoint *model.Outpoint
	switch {
	case req.TxID != "" && req.Vout != nil:
		outpoint = &model.Outpoint{TxID: req.TxID, Vout: *req.Vout}
	case req.TxID != "" || req.Vout != nil:
		badRequest(c, "txid and vout must be given together")
		return
	}

	rec, err := h.deps.Ledger.UpdateAddressPayment(c.Request.Context(), addressID, *req.AmountReceived, req.Confirmations, outpoint)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAddressResponse(rec))
}

type recordTransactionRequest struct {
	TxID          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Amount        int64   `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	BlockHeight   *int64  `json:"blockHeight"`
	BlockHash     *string `json:"blockHash"`
}

func (h *Handler) recordTransaction(c *gin.Context) {
	addressID, ok := addressIDParam(c)
	if !ok {
		return
	}
	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	rec, err := h.deps.Ledger.RecordTransaction(c.Request.Context(), ledger.TransactionInput{
		AddressID:     addressID,
		TxID:          req.TxID,
		Vout:          req.Vout,
		Amount:        req.Amount,
		Confirmations: req.Confirmations,
		BlockHeight:   req.BlockHeight,
		BlockHash:     req.BlockHash,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) getInvoice(c *gin.Context) {
	if h.deps.Invoices == nil {
		writeError(c, model.ErrInvoiceRailDisabled)
		return
	}
	inv, err := h.deps.Invoices.GetInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type priceResponse struct {
	Pair string          `json:"pair"`
	Rate decimal.Decimal `json:"rate"`
}

func (h *Handler) price(c *gin.Context) {
	c.JSON(http.StatusOK, priceResponse{Pair: "BTC-USD", Rate: h.deps.Prices.GetBitcoinPrice(c.Request.Context())})
}

type xpubResponse struct {
	Xpub    string `json:"xpub"`
	Network string `json:"network"`
	Path    string `json:"path"`
}

func (h *Handler) walletXpub(c *gin.Context) {
	xpub, err := h.deps.Wallet.MasterPublicKey()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, xpubResponse{Xpub: xpub, Network: h.deps.Network, Path: "m"})
}

type webhookResponse struct {
	Status      string            `json:"status"`
	Event       string            `json:"event,omitempty"`
	OrderStatus model.OrderStatus `json:"orderStatus,omitempty"`
}

func (h *Handler) btcpayWebhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes))
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}

	result, err := h.deps.Checkout.ApplyWebhook(c.Request.Context(), c.GetHeader(btcpay.SignatureHeader), body)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := webhookResponse{Status: "ignored", Event: result.Event.RawType}
	if result.Applied {
		resp.Status = "applied"
		resp.OrderStatus = result.Status
	}
	h.logger.Debug("btcpay webhook handled",
		zap.String("event", result.Event.RawType),
		zap.String("status", resp.Status),
	)
	c.JSON(http.StatusOK, resp)
}

func addressIDParam(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("addressID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(c, fmt.Errorf("%w: invalid address id %q", model.ErrValidation, raw))
		return 0, false
	}
	return id, true
}
