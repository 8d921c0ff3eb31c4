package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePIN(t *testing.T) {
	valid := []string{"000000", "123456", "999999"}
	for _, pin := range valid {
		assert.NoError(t, ValidatePIN([]byte(pin)), pin)
	}

	invalid := []string{"", "12345", "1234567", "12345a", " 23456", "１２３４５６"}
	for _, pin := range invalid {
		require.ErrorIs(t, ValidatePIN([]byte(pin)), ErrInvalidPIN, pin)
	}
}
