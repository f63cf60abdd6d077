// Package httpapi exposes the payment core over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps are the services behind the API. Invoices and InvoiceLinks may be nil
// when the invoice rail is not deployed.
type Deps struct {
	Ledger       Ledger
	Checkout     Checkout
	Invoices     Invoices
	InvoiceLinks InvoiceLinks
	Prices       PriceOracle
	Wallet       Wallet
	Network      string
}

// Handler serves the payment API.
type Handler struct {
	deps   Deps
	logger *zap.Logger
}

// NewHandler constructs a Handler.
func NewHandler(deps Deps, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{deps: deps, logger: logger.Named("httpapi")}
}

// NewRouter builds the gin engine with every route and wraps it in CORS.
func NewRouter(h *Handler, corsOptions cors.Options) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/webhooks/btcpay", h.btcpayWebhook)

	api := r.Group("/api/v1")
	payments := api.Group("/payments")
	payments.POST("/checkout", h.createPayment)
	payments.POST("/orders/:orderID/address", h.generateAddress)
	payments.GET("/orders/:orderID", h.orderPayment)
	payments.GET("/addresses/active", h.activeAddresses)
	payments.POST("/addresses/:addressID/payments", h.updateAddressPayment)
	payments.POST("/addresses/:addressID/transactions", h.recordTransaction)
	payments.GET("/invoices/:invoiceID", h.getInvoice)
	payments.GET("/price", h.price)
	api.GET("/wallet/xpub", h.walletXpub)

	return cors.New(corsOptions).Handler(r)
}
