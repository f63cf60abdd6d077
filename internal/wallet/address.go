package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/shopspring/decimal"
)

// IsValidAddress reports whether address decodes to a spendable output script on params.
func IsValidAddress(address string, params *chaincfg.Params) bool {
	if address == "" || params == nil {
		return false
	}
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return false
	}
	if !addr.IsForNet(params) {
		return false
	}
	_, err = txscript.PayToAddrScript(addr)
	return err == nil
}

// PaymentURI builds a BIP21 URI requesting sats on address.
func PaymentURI(address string, sats int64) string {
	return "bitcoin:" + address + "?amount=" + FormatBTC(sats)
}

// FormatBTC renders satoshis as a BTC string with exactly eight decimals.
func FormatBTC(sats int64) string {
	return decimal.New(sats, -8).StringFixed(8)
}
