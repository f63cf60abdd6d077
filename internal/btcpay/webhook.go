package btcpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "BTCPay-Sig"

const signaturePrefix = "sha256="

// VerifyWebhook authenticates a raw webhook body against the shared secret and
// decodes it. It returns nil on a missing or mismatched signature, an
// unconfigured rail or an undecodable payload.
func (c *Client) VerifyWebhook(signatureHeader string, body []byte) *WebhookEvent {
	if !c.IsReady() {
		c.logger.Warn("webhook rejected: invoice rail is not configured")
		c.metrics.ObserveWebhook("", "disabled")
		return nil
	}
	if !validSignature(c.cfg.WebhookSecret, signatureHeader, body) {
		c.logger.Warn("webhook rejected: signature mismatch", zap.Int("body_bytes", len(body)))
		c.metrics.ObserveWebhook("", "unauthorized")
		return nil
	}

	event, ok := decodeWebhook(body)
	if !ok {
		c.logger.Warn("webhook rejected: malformed payload", zap.Int("body_bytes", len(body)))
		c.metrics.ObserveWebhook("", "malformed")
		return nil
	}

	c.metrics.ObserveWebhook(string(event.Type), "accepted")
	return event
}

func validSignature(secret, header string, body []byte) bool {
	header = strings.TrimSpace(header)
	if header == "" || secret == "" {
		return false
	}
	header = strings.TrimPrefix(header, signaturePrefix)

	got, err := hex.DecodeString(header)
	if err != nil || len(got) != sha256.Size {
		return false
	}
	return hmac.Equal(got, sign(secret, body))
}

func sign(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}
