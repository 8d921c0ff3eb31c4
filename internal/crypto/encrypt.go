package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/covenant-gov/1key/internal/model"
)

// Cipher encrypts and decrypts wallet data with a PIN-derived key.
// The zero value is not usable, use NewCipher.
type Cipher struct {
	params KDFParams
	rand   io.Reader
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithKDFParams overrides the Argon2id cost parameters.
func WithKDFParams(p KDFParams) Option {
	return func(c *Cipher) { c.params = p }
}

// WithRand overrides the source of salts and nonces.
func WithRand(r io.Reader) Option {
	return func(c *Cipher) { c.rand = r }
}

// NewCipher creates a Cipher with default KDF parameters and crypto/rand.
func NewCipher(opts ...Option) *Cipher {
	c := &Cipher{params: DefaultKDFParams(), rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encrypt seals walletData under a key derived from pin.
// Every call uses a fresh salt and a fresh nonce, so the same input never
// produces the same envelope twice.
// pin must be []byte for security (caller should zero it after use)
func (c *Cipher) Encrypt(walletData *model.WalletData, pin []byte) (*model.EncryptedWallet, error) {
	if walletData == nil {
		return nil, errors.New("wallet data is nil")
	}

	// Generate salt
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// Derive key from PIN
	key, err := DeriveKey(pin, salt, c.params)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Serialize wallet data
	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	// Generate nonce
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Encrypt
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.EncryptedWallet{
		EncryptedData: ciphertext,
		Nonce:         nonce,
		Salt:          salt,
	}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
