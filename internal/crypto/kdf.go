package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for the PIN-derived wallet key.
	// These are the Argon2 reference defaults (m=19 MiB, t=2, p=1): the PIN is
	// only 6 digits, so the KDF cost is the only thing standing between a stolen
	// wallet file and a brute-forced key.
	argon2Time    = 2
	argon2Memory  = 19 * 1024 // KiB
	argon2Threads = 1
	keyLen        = 32 // AES-256

	saltLen    = 16
	minSaltLen = 8 // RFC 9106 minimum
	nonceLen   = 12
)

// ErrKeyDerivation is returned when the salt or the KDF parameters are rejected.
var ErrKeyDerivation = errors.New("key derivation failed")

// KDFParams holds Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKDFParams returns the parameters used for wallet files.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: argon2Time, Memory: argon2Memory, Threads: argon2Threads}
}

// DeriveKey derives a 32-byte key from pin and salt using Argon2id.
// The salt is mandatory: callers generate a fresh one when encrypting and
// reuse the stored one when decrypting. Identical inputs always yield the same key.
func DeriveKey(pin, salt []byte, params KDFParams) ([]byte, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt is empty", ErrKeyDerivation)
	}
	if len(salt) < minSaltLen {
		return nil, fmt.Errorf("%w: salt must be at least %d bytes, got %d", ErrKeyDerivation, minSaltLen, len(salt))
	}
	if params.Time == 0 || params.Threads == 0 {
		return nil, fmt.Errorf("%w: time and threads must be positive", ErrKeyDerivation)
	}
	if params.Memory < 8*uint32(params.Threads) {
		return nil, fmt.Errorf("%w: memory must be at least %d KiB", ErrKeyDerivation, 8*uint32(params.Threads))
	}

	return argon2.IDKey(pin, salt, params.Time, params.Memory, params.Threads, keyLen), nil
}
