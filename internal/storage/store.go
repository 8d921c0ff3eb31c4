// Package storage persists the single encrypted wallet slot on disk.
//
// The slot is one JSON file. FileStore serializes every operation on it
// through a mutex, and writes go through a temp file that is renamed over the
// target so a crash mid-write leaves either the old or the new envelope.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/covenant-gov/1key/internal/model"
)

// FileName is the name of the wallet file inside the application data directory.
const FileName = "wallet.encrypted"

// ErrIO wraps filesystem failures (permissions, missing directory, disk full).
var ErrIO = errors.New("wallet storage i/o error")

// FileStore stores exactly one encrypted wallet at a fixed path.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store for the wallet file at path.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// NewDirStore creates a store for FileName inside dir.
func NewDirStore(dir string) *FileStore { return NewFileStore(filepath.Join(dir, FileName)) }

// Path returns the wallet file path.
func (s *FileStore) Path() string { return s.path }

// Exists reports whether the wallet file is present.
func (s *FileStore) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exists()
}

func (s *FileStore) exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: failed to stat wallet file: %v", ErrIO, err)
}

// Store writes encrypted to disk, replacing any previous wallet.
func (s *FileStore) Store(encrypted *model.EncryptedWallet) error {
	if err := validate(encrypted); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", ErrIO, err)
	}
	if err := writeFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write wallet: %v", ErrIO, err)
	}
	return nil
}

// Load reads the wallet file. It returns nil, nil when no wallet is stored.
func (s *FileStore) Load() (*model.EncryptedWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read wallet: %v", ErrIO, err)
	}

	var encrypted model.EncryptedWallet
	if err := json.Unmarshal(data, &encrypted); err != nil {
		if errors.Is(err, model.ErrFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to parse wallet file: %v", model.ErrFormat, err)
	}
	if err := validate(&encrypted); err != nil {
		return nil, err
	}

	return &encrypted, nil
}

// validate rejects envelopes that Load could not read back.
func validate(encrypted *model.EncryptedWallet) error {
	if encrypted == nil {
		return fmt.Errorf("%w: encrypted wallet is nil", model.ErrFormat)
	}
	if len(encrypted.EncryptedData) == 0 || len(encrypted.Nonce) == 0 || len(encrypted.Salt) == 0 {
		return fmt.Errorf("%w: wallet is missing fields", model.ErrFormat)
	}
	return nil
}

// Delete removes the wallet file. Deleting an absent wallet is not an error.
func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: failed to delete wallet: %v", ErrIO, err)
}
