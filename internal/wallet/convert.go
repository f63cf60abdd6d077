package wallet

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

// SatoshisToBTC converts satoshis to a BTC float.
func SatoshisToBTC(sats int64) float64 {
	return btcutil.Amount(sats).ToBTC()
}

// BtcToSatoshis converts BTC to satoshis rounded to the nearest whole satoshi.
func BtcToSatoshis(value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: invalid btc amount %v", model.ErrValidation, value)
	}
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if amt < 0 {
		return 0, fmt.Errorf("%w: negative amount: %d", model.ErrValidation, amt)
	}
	return int64(amt), nil
}
