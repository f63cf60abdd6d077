package btcpay

import (
	"encoding/json"
	"time"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// EventType is the "type" field of a BTCPay webhook delivery.
type EventType string

const (
	EventInvoiceCreated         EventType = "InvoiceCreated"
	EventInvoiceReceivedPayment EventType = "InvoiceReceivedPayment"
	EventInvoicePaymentSettled  EventType = "InvoicePaymentSettled"
	EventInvoiceProcessing      EventType = "InvoiceProcessing"
	EventInvoiceExpired         EventType = "InvoiceExpired"
	EventInvoiceInvalid         EventType = "InvoiceInvalid"
	// EventUnknown tags any delivery whose type is not listed above.
	EventUnknown EventType = "Unknown"
)

var orderStatusByEvent = map[EventType]model.OrderStatus{
	EventInvoiceCreated:         model.OrderUnpaid,
	EventInvoiceReceivedPayment: model.OrderPaid,
	EventInvoicePaymentSettled:  model.OrderConfirmed,
	EventInvoiceProcessing:      model.OrderPaid,
	EventInvoiceExpired:         model.OrderExpired,
	EventInvoiceInvalid:         model.OrderCancelled,
}

// ParseEventType tags raw as a known event type or EventUnknown.
func ParseEventType(raw string) EventType {
	t := EventType(raw)
	if _, ok := orderStatusByEvent[t]; ok {
		return t
	}
	return EventUnknown
}

// MapWebhookTypeToOrderStatus returns the order status for a known event type.
// Unknown types report false and must not change order state.
func MapWebhookTypeToOrderStatus(t EventType) (model.OrderStatus, bool) {
	status, ok := orderStatusByEvent[t]
	return status, ok
}

// WebhookEvent is a verified BTCPay webhook delivery.
type WebhookEvent struct {
	Type       EventType
	RawType    string
	DeliveryID string
	InvoiceID  string
	StoreID    string
	OrderID    string
	Timestamp  time.Time
}

// Known reports whether the event type maps to an order status.
func (e WebhookEvent) Known() bool {
	return e.Type != EventUnknown
}

type webhookPayload struct {
	DeliveryID string          `json:"deliveryId"`
	WebhookID  string          `json:"webhookId"`
	Type       string          `json:"type"`
	Timestamp  int64           `json:"timestamp"`
	StoreID    string          `json:"storeId"`
	InvoiceID  string          `json:"invoiceId"`
	Metadata   json.RawMessage `json:"metadata"`
}

type invoiceMetadata struct {
	OrderID    string `json:"orderId,omitempty"`
	ItemDesc   string `json:"itemDesc,omitempty"`
	BuyerEmail string `json:"buyerEmail,omitempty"`
}

func decodeWebhook(body []byte) (*WebhookEvent, bool) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}
	if payload.Type == "" {
		return nil, false
	}

	event := &WebhookEvent{
		Type:       ParseEventType(payload.Type),
		RawType:    payload.Type,
		DeliveryID: payload.DeliveryID,
		InvoiceID:  payload.InvoiceID,
		StoreID:    payload.StoreID,
	}
	if payload.Timestamp > 0 {
		event.Timestamp = time.Unix(payload.Timestamp, 0).UTC()
	}
	if len(payload.Metadata) > 0 {
		var meta invoiceMetadata
		if err := json.Unmarshal(payload.Metadata, &meta); err == nil {
			event.OrderID = meta.OrderID
		}
	}
	return event, true
}
