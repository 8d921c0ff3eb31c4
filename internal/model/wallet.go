package model

import (
	"fmt"
	"io"
)

// EncryptedWallet represents the wallet.encrypted file structure.
// Salt and nonce are stored next to the ciphertext, decryption is impossible without them.
type EncryptedWallet struct {
	EncryptedData Bytes `json:"encrypted_data"` // AES-256-GCM ciphertext with tag appended
	Nonce         Bytes `json:"nonce"`          // 12 bytes, fresh per encryption
	Salt          Bytes `json:"salt"`           // 16 bytes, Argon2id salt, fresh per encryption
}

// WalletData represents decrypted wallet data
type WalletData struct {
	PrivateKey Secret `json:"private_key"`
	Address    string `json:"address"`
}

// Secret holds private key material. It redacts itself when formatted
// so a WalletData can be logged or printed with %v without leaking the key.
type Secret string

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return "[SECRET]" }

// Format implements fmt.Formatter so %v, %+v, %#v and %s are redacted too.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, "[SECRET]")
}

// Reveal returns the raw secret value.
func (s Secret) Reveal() string { return string(s) }
