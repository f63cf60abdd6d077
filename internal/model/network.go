// Package model defines domain models of the bitcoin payment core.
package model

// Network selects the bitcoin chain the wallet derives addresses for.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
