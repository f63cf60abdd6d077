package watcher

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// outputAddresses returns the addresses an output pays. Nodes report them
// directly in recent versions; older ones only give the script.
func outputAddresses(vout btcjson.Vout, params *chaincfg.Params) []string {
	if vout.ScriptPubKey.Address != "" {
		return []string{vout.ScriptPubKey.Address}
	}
	if len(vout.ScriptPubKey.Addresses) > 0 {
		return vout.ScriptPubKey.Addresses
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result
}
