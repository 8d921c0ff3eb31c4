package wallet_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	pngpkg "image/png"
	"os"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-gov/1key/internal/common"
	"github.com/covenant-gov/1key/internal/crypto"
	"github.com/covenant-gov/1key/internal/model"
	"github.com/covenant-gov/1key/internal/storage"
	"github.com/covenant-gov/1key/wallet"
)

func newService(t *testing.T) (*wallet.Service, *storage.FileStore) {
	t.Helper()
	store := storage.NewDirStore(t.TempDir())
	cipher := crypto.NewCipher(crypto.WithKDFParams(crypto.KDFParams{Time: 1, Memory: 64, Threads: 1}))
	return wallet.NewService(store, cipher), store
}

func TestService_EncryptAndStoreThenUnlock(t *testing.T) {
	svc, _ := newService(t)
	data := &model.WalletData{PrivateKey: "deadbeef", Address: "0x1234"}

	exists, err := svc.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, svc.EncryptAndStore(data, []byte("123456")))

	exists, err = svc.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := svc.DecryptWithPIN([]byte("123456"))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = svc.DecryptWithPIN([]byte("654321"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestService_InvalidPIN(t *testing.T) {
	svc, _ := newService(t)
	data := &model.WalletData{PrivateKey: "deadbeef", Address: "0x1234"}

	require.ErrorIs(t, svc.EncryptAndStore(data, []byte("12")), common.ErrInvalidPIN)

	_, err := svc.DecryptWithPIN([]byte("abcdef"))
	require.ErrorIs(t, err, common.ErrInvalidPIN)

	_, _, err = svc.Generate(nil)
	require.ErrorIs(t, err, common.ErrInvalidPIN)
}

func TestService_DecryptWithoutWallet(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.DecryptWithPIN([]byte("123456"))
	require.ErrorIs(t, err, wallet.ErrNoWallet)
}

func TestService_DecryptCorruptFile(t *testing.T) {
	svc, store := newService(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"encrypted_data":`), 0o600))

	_, err := svc.DecryptWithPIN([]byte("123456"))
	require.ErrorIs(t, err, model.ErrFormat)
}

func TestService_StoreLoadEncrypted(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.LoadEncrypted()
	require.NoError(t, err)
	assert.Nil(t, got)

	env := &model.EncryptedWallet{
		EncryptedData: model.Bytes{1, 2, 3},
		Nonce:         make(model.Bytes, 12),
		Salt:          make(model.Bytes, 16),
	}
	require.NoError(t, svc.StoreEncrypted(env))

	got, err = svc.LoadEncrypted()
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.Delete())

	require.NoError(t, svc.EncryptAndStore(&model.WalletData{PrivateKey: "k", Address: "a"}, []byte("123456")))
	require.NoError(t, svc.Delete())

	exists, err := svc.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_Generate(t *testing.T) {
	svc, _ := newService(t)

	address, qr, err := svc.Generate([]byte("123456"))
	require.NoError(t, err)

	pub, err := solana.PublicKeyFromBase58(address)
	require.NoError(t, err)

	png, err := base64.StdEncoding.DecodeString(qr)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	got, err := svc.DecryptWithPIN([]byte("123456"))
	require.NoError(t, err)
	assert.Equal(t, address, got.Address)

	priv, err := solana.PrivateKeyFromBase58(got.PrivateKey.Reveal())
	require.NoError(t, err)
	assert.Equal(t, pub, priv.PublicKey())

	_, _, err = svc.Generate([]byte("123456"))
	require.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestService_GenerateConcurrent(t *testing.T) {
	svc, _ := newService(t)

	const n = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		addresses []string
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			address, _, err := svc.Generate([]byte("123456"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				addresses = append(addresses, address)
			case errors.Is(err, wallet.ErrWalletExists):
				conflicts++
			default:
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	require.Len(t, addresses, 1)
	assert.Equal(t, n-1, conflicts)

	got, err := svc.DecryptWithPIN([]byte("123456"))
	require.NoError(t, err)
	assert.Equal(t, addresses[0], got.Address)
}

func TestAddressQR(t *testing.T) {
	qr, err := wallet.AddressQR("9u8bESx4kvQzjA1cZ1Xo2gk3eFTYpyXv3s1pyfUdQSx1", 128)
	require.NoError(t, err)

	png, err := base64.StdEncoding.DecodeString(qr)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	cfg, err := pngpkg.DecodeConfig(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}
