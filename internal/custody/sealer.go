// Package custody seals derived private keys at rest.
package custody

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/goodnatureofminers/btcpayments-backend/internal/model"
)

const (
	blobVersion = "v1"
	hkdfInfo    = "btcpayments/custody/private-key/v1"
)

var blobEncoding = base64.RawURLEncoding

// Sealer encrypts private keys with XChaCha20-Poly1305 bound to the owning order id.
type Sealer struct {
	key   []byte
	nonce io.Reader
}

// NewSealer derives the sealing key from secret. An empty secret is a configuration error.
func NewSealer(secret string) (*Sealer, error) {
	return newSealer(secret, rand.Reader)
}

func newSealer(secret string, nonceSource io.Reader) (*Sealer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: key encryption secret is required", model.ErrConfiguration)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("%w: derive sealing key: %v", model.ErrConfiguration, err)
	}

	return &Sealer{key: key, nonce: nonceSource}, nil
}

// EncryptPrivateKey seals privateKeyHex for orderID and returns a versioned text blob.
func (s *Sealer) EncryptPrivateKey(privateKeyHex, orderID string) (string, error) {
	if privateKeyHex == "" || orderID == "" {
		return "", fmt.Errorf("%w: private key and order id are required", model.ErrValidation)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("init aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(privateKeyHex)+aead.Overhead())
	if _, err := io.ReadFull(s.nonce, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(privateKeyHex), []byte(orderID))
	return blobVersion + "." + blobEncoding.EncodeToString(sealed), nil
}

// DecryptPrivateKey opens a blob produced by EncryptPrivateKey for the same orderID.
func (s *Sealer) DecryptPrivateKey(blob, orderID string) (string, error) {
	version, payload, ok := strings.Cut(blob, ".")
	if !ok || version != blobVersion {
		return "", fmt.Errorf("%w: unsupported key blob format", model.ErrValidation)
	}

	raw, err := blobEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: decode key blob: %v", model.ErrValidation, err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("init aead: %w", err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", fmt.Errorf("%w: key blob too short", model.ErrValidation)
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(orderID))
	if err != nil {
		return "", fmt.Errorf("%w: key blob does not open for order %s", model.ErrValidation, orderID)
	}
	return string(plain), nil
}
