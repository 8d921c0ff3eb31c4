// Package wallet ties the PIN cipher to the on-disk wallet slot.
package wallet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/covenant-gov/1key/internal/common"
	"github.com/covenant-gov/1key/internal/logging"
	"github.com/covenant-gov/1key/internal/model"
)

var (
	// ErrNoWallet is returned when decrypting while no wallet is stored.
	ErrNoWallet = errors.New("no wallet found")
	// ErrWalletExists is returned by Generate when a wallet is already stored.
	ErrWalletExists = errors.New("wallet already exists")
)

// Store is the single-slot wallet storage. *storage.FileStore implements it.
type Store interface {
	Exists() (bool, error)
	Store(encrypted *model.EncryptedWallet) error
	Load() (*model.EncryptedWallet, error)
	Delete() error
}

// Cipher seals wallet data under a PIN. *crypto.Cipher implements it.
type Cipher interface {
	Encrypt(walletData *model.WalletData, pin []byte) (*model.EncryptedWallet, error)
	Decrypt(encrypted *model.EncryptedWallet, pin []byte) (*model.WalletData, error)
}

// Service implements the wallet operations exposed to the UI.
// Operations that write the slot hold mu, so Generate's existence check
// and its store cannot interleave with another write.
type Service struct {
	store  Store
	cipher Cipher

	mu sync.Mutex
}

// NewService creates a new Service.
func NewService(store Store, cipher Cipher) *Service {
	return &Service{store: store, cipher: cipher}
}

// Exists reports whether a wallet is stored.
func (s *Service) Exists() (bool, error) {
	return s.store.Exists()
}

// StoreEncrypted writes an already encrypted wallet, replacing any stored one.
func (s *Service) StoreEncrypted(encrypted *model.EncryptedWallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Store(encrypted)
}

// LoadEncrypted returns the stored envelope, or nil when there is none.
func (s *Service) LoadEncrypted() (*model.EncryptedWallet, error) {
	return s.store.Load()
}

// EncryptAndStore encrypts walletData with pin and replaces the stored wallet.
// pin must be []byte for security (caller should zero it after use)
func (s *Service) EncryptAndStore(walletData *model.WalletData, pin []byte) error {
	if err := common.ValidatePIN(pin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.encryptAndStore(walletData, pin)
}

// encryptAndStore requires s.mu.
func (s *Service) encryptAndStore(walletData *model.WalletData, pin []byte) error {
	encrypted, err := s.cipher.Encrypt(walletData, pin)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}
	if err := s.store.Store(encrypted); err != nil {
		return fmt.Errorf("failed to store wallet: %w", err)
	}

	logging.L.Info("wallet stored", "address", walletData.Address)
	return nil
}

// DecryptWithPIN loads the stored wallet and decrypts it with pin.
// pin must be []byte for security (caller should zero it after use)
func (s *Service) DecryptWithPIN(pin []byte) (*model.WalletData, error) {
	if err := common.ValidatePIN(pin); err != nil {
		return nil, err
	}

	encrypted, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if encrypted == nil {
		return nil, ErrNoWallet
	}

	walletData, err := s.cipher.Decrypt(encrypted, pin)
	if err != nil {
		logging.L.Warn("wallet unlock failed", "err", err)
		return nil, err
	}
	return walletData, nil
}

// Delete removes the stored wallet. Deleting when none is stored succeeds.
func (s *Service) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	logging.L.Info("wallet deleted")
	return nil
}
