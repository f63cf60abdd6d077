package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks missing or invalid startup configuration. It is fatal.
	ErrConfiguration = errors.New("configuration error")
	// ErrDerivation marks an HD derivation failure. Valid inputs never produce it.
	ErrDerivation = errors.New("derivation error")
	// ErrValidation marks malformed external input. No state is changed.
	ErrValidation = errors.New("validation error")
	// ErrExternalService marks an unreachable or misbehaving upstream API.
	ErrExternalService = errors.New("external service error")
	// ErrWebhookAuth marks an inbound webhook whose signature did not verify.
	ErrWebhookAuth = errors.New("webhook authentication failed")
	// ErrNotFound marks a missing ledger record.
	ErrNotFound = errors.New("not found")
	// ErrInvoiceRailDisabled is returned by invoice operations when BTCPay is not configured.
	ErrInvoiceRailDisabled = fmt.Errorf("%w: invoice rail is not configured", ErrConfiguration)
)
