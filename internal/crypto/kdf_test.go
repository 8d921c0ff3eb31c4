package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, saltLen)

	k1, err := DeriveKey([]byte("123456"), salt, DefaultKDFParams())
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("123456"), salt, DefaultKDFParams())
	require.NoError(t, err)

	assert.Len(t, k1, keyLen)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_InputsChangeKey(t *testing.T) {
	p := testParams()
	salt := bytes.Repeat([]byte{0x01}, saltLen)
	otherSalt := bytes.Repeat([]byte{0x02}, saltLen)

	base, err := DeriveKey([]byte("123456"), salt, p)
	require.NoError(t, err)

	otherPIN, err := DeriveKey([]byte("654321"), salt, p)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPIN)

	saltChanged, err := DeriveKey([]byte("123456"), otherSalt, p)
	require.NoError(t, err)
	assert.NotEqual(t, base, saltChanged)
}

func TestDeriveKey_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		salt   []byte
		params KDFParams
	}{
		{"empty salt", nil, testParams()},
		{"short salt", []byte{1, 2, 3}, testParams()},
		{"zero time", make([]byte, saltLen), KDFParams{Time: 0, Memory: 64, Threads: 1}},
		{"zero threads", make([]byte, saltLen), KDFParams{Time: 1, Memory: 64, Threads: 0}},
		{"memory too low", make([]byte, saltLen), KDFParams{Time: 1, Memory: 4, Threads: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey([]byte("123456"), tt.salt, tt.params)
			require.ErrorIs(t, err, ErrKeyDerivation)
			assert.Nil(t, key)
		})
	}
}

// testParams keeps Argon2 cheap so tamper tests can run many decryptions.
func testParams() KDFParams {
	return KDFParams{Time: 1, Memory: 64, Threads: 1}
}
