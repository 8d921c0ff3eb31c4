package common

import (
	"errors"
	"fmt"
)

// PINLength is the number of digits in a wallet PIN.
const PINLength = 6

// ErrInvalidPIN is returned when a PIN is not exactly PINLength ASCII digits.
var ErrInvalidPIN = errors.New("PIN must be 6 digits")

// ValidatePIN checks that pin is exactly 6 ASCII digits.
func ValidatePIN(pin []byte) error {
	if len(pin) != PINLength {
		return fmt.Errorf("%w: got %d characters", ErrInvalidPIN, len(pin))
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}
