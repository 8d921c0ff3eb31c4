package crypto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/covenant-gov/1key/internal/model"
)

// ErrAuthentication is returned when the GCM tag does not verify.
// A wrong PIN and a tampered file look the same and are deliberately not told apart.
var ErrAuthentication = errors.New("decryption failed: wrong PIN or corrupted wallet")

// Decrypt opens encrypted with a key derived from pin and the envelope's salt.
// pin must be []byte for security (caller should zero it after use)
func (c *Cipher) Decrypt(encrypted *model.EncryptedWallet, pin []byte) (*model.WalletData, error) {
	if encrypted == nil {
		return nil, fmt.Errorf("%w: envelope is nil", model.ErrFormat)
	}
	if len(encrypted.Nonce) != nonceLen {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", model.ErrFormat, nonceLen, len(encrypted.Nonce))
	}

	// Derive key from PIN
	key, err := DeriveKey(pin, encrypted.Salt, c.params)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Decrypt
	plaintext, err := aesGCM.Open(nil, encrypted.Nonce, encrypted.EncryptedData, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	// Deserialize wallet data
	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal wallet data: %v", model.ErrFormat, err)
	}

	return &walletData, nil
}
