package wallet

import (
	"encoding/base64"
	"fmt"

	"github.com/covenant-gov/1key/internal/common"
	"github.com/covenant-gov/1key/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length in pixels of the address QR code returned by Generate.
const QRSize = 256

// Generate creates a new keypair, encrypts it with pin and stores it.
// It refuses to overwrite an existing wallet, including one stored by a
// concurrent Generate.
// Returns the public address and a base64 PNG QR code of it.
// pin must be []byte for security (caller should zero it after use)
func (s *Service) Generate(pin []byte) (address, qrCode string, err error) {
	if err := common.ValidatePIN(pin); err != nil {
		return "", "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.store.Exists()
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", "", ErrWalletExists
	}

	// Generate new keypair
	privateKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate keypair: %w", err)
	}
	defer clear(privateKey)

	address = privateKey.PublicKey().String()

	qrCode, err = AddressQR(address, QRSize)
	if err != nil {
		return "", "", err
	}

	walletData := &model.WalletData{
		PrivateKey: model.Secret(privateKey.String()),
		Address:    address,
	}
	if err := s.encryptAndStore(walletData, pin); err != nil {
		return "", "", err
	}

	return address, qrCode, nil
}

// AddressQR renders a "solana:<address>" URI as a size x size PNG QR code,
// base64 encoded. Wallet apps scanning it prefill the recipient.
func AddressQR(address string, size int) (string, error) {
	png, err := qrcode.Encode("solana:"+address, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
