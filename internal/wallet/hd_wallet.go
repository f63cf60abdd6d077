// Package wallet derives per-order deposit addresses from a single BIP39 master seed.
package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

const (
	purposeBIP44 = 44
	coinTypeBTC  = 0
	accountIndex = 0
	externalPath = 0

	derivationPathFormat = "m/44'/0'/0'/0/%d"
)

// Config carries the secret material and network of the wallet.
type Config struct {
	Mnemonic   string
	Passphrase string
	Network    model.Network
}

// OrderAddress is the key material derived for one order.
type OrderAddress struct {
	Index          uint32
	Address        string
	PrivateKey     string
	PublicKey      string
	DerivationPath string
}

// HDWallet derives P2WPKH addresses under m/44'/0'/0'/0. It holds no mutable state
// and is safe for concurrent use.
type HDWallet struct {
	params   *chaincfg.Params
	master   *hdkeychain.ExtendedKey
	external *hdkeychain.ExtendedKey
}

// New builds a wallet from cfg. A missing or invalid mnemonic is a configuration error.
func New(cfg Config) (*HDWallet, error) {
	mnemonic := strings.Join(strings.Fields(cfg.Mnemonic), " ")
	if mnemonic == "" {
		return nil, fmt.Errorf("%w: wallet mnemonic is required", model.ErrConfiguration)
	}
	params, err := ParamsForNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wallet mnemonic", model.ErrConfiguration)
	}
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("%w: create master key: %v", model.ErrConfiguration, err)
	}
	external, err := deriveExternalChain(master)
	if err != nil {
		return nil, err
	}

	return &HDWallet{
		params:   params,
		master:   master,
		external: external,
	}, nil
}

func deriveExternalChain(master *hdkeychain.ExtendedKey) (*hdkeychain.ExtendedKey, error) {
	steps := []struct {
		name  string
		index uint32
	}{
		{"purpose", hdkeychain.HardenedKeyStart + purposeBIP44},
		{"coin", hdkeychain.HardenedKeyStart + coinTypeBTC},
		{"account", hdkeychain.HardenedKeyStart + accountIndex},
		{"change", externalPath},
	}

	key := master
	for _, step := range steps {
		child, err := key.Derive(step.index)
		if err != nil {
			return nil, fmt.Errorf("%w: derive %s key: %v", model.ErrDerivation, step.name, err)
		}
		key = child
	}

	// Derive on a shared parent computes the public key lazily; warm it once.
	if _, err := key.ECPubKey(); err != nil {
		return nil, fmt.Errorf("%w: warm external chain pubkey: %v", model.ErrDerivation, err)
	}
	return key, nil
}

// Params returns the chain parameters of the wallet network.
func (w *HDWallet) Params() *chaincfg.Params {
	return w.params
}

// GenerateOrderAddress derives the address and key pair at m/44'/0'/0'/0/{index}.
func (w *HDWallet) GenerateOrderAddress(index uint32) (OrderAddress, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return OrderAddress{}, fmt.Errorf("%w: derivation index %d out of range", model.ErrValidation, index)
	}

	child, err := w.external.Derive(index)
	if err != nil {
		return OrderAddress{}, fmt.Errorf("%w: derive index %d: %v", model.ErrDerivation, index, err)
	}
	privKey, err := child.ECPrivKey()
	if err != nil || privKey == nil {
		return OrderAddress{}, fmt.Errorf("%w: no private key at index %d", model.ErrDerivation, index)
	}

	pubKey := privKey.PubKey().SerializeCompressed()
	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pubKey), w.params)
	if err != nil {
		return OrderAddress{}, fmt.Errorf("%w: p2wpkh address at index %d: %v", model.ErrDerivation, index, err)
	}

	return OrderAddress{
		Index:          index,
		Address:        addr.EncodeAddress(),
		PrivateKey:     hex.EncodeToString(privKey.Serialize()),
		PublicKey:      hex.EncodeToString(pubKey),
		DerivationPath: DerivationPath(index),
	}, nil
}

// MasterPublicKey returns the neutered master key for watch-only auditing.
func (w *HDWallet) MasterPublicKey() (string, error) {
	pub, err := w.master.Neuter()
	if err != nil {
		return "", fmt.Errorf("%w: neuter master key: %v", model.ErrDerivation, err)
	}
	return pub.String(), nil
}

// DerivationPath formats the BIP44 path for an address index.
func DerivationPath(index uint32) string {
	return fmt.Sprintf(derivationPathFormat, index)
}
