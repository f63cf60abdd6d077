package ledger

import "time"

const (
	// activeWindow bounds how far back GetActiveAddresses looks.
	activeWindow = 24 * time.Hour

	maxOrderIDLength = 64
	maxTxIDLength    = 64
)
