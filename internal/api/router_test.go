package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-gov/1key/internal/api"
	"github.com/covenant-gov/1key/internal/client"
	"github.com/covenant-gov/1key/internal/crypto"
	"github.com/covenant-gov/1key/internal/model"
	"github.com/covenant-gov/1key/internal/storage"
	"github.com/covenant-gov/1key/wallet"
)

type fakeAztec struct {
	method string
	params any
	result json.RawMessage
	err    error
}

func (f *fakeAztec) Call(_ context.Context, method string, params any) (json.RawMessage, error) {
	f.method, f.params = method, params
	return f.result, f.err
}

func newRouter(t *testing.T, aztec *fakeAztec) http.Handler {
	t.Helper()
	store := storage.NewDirStore(t.TempDir())
	cipher := crypto.NewCipher(crypto.WithKDFParams(crypto.KDFParams{Time: 1, Memory: 64, Threads: 1}))
	return api.SetupRouter(wallet.NewService(store, cipher), aztec)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWalletFlow(t *testing.T) {
	h := newRouter(t, &fakeAztec{})

	rec := do(t, h, http.MethodGet, "/wallet/exists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":false}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/wallet/unlock", `{"pin":"123456"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_WALLET", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/wallet/generate", `{"pin":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var gen model.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gen))
	assert.True(t, gen.Success)
	assert.NotEmpty(t, gen.Address)
	assert.NotEmpty(t, gen.QR)

	rec = do(t, h, http.MethodPost, "/wallet/generate", `{"pin":"123456"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/wallet/unlock", `{"pin":"000000"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INCORRECT_PIN", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/wallet/unlock", `{"pin":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var unlocked model.UnlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unlocked))
	assert.Equal(t, gen.Address, unlocked.Address)
	assert.NotContains(t, rec.Body.String(), "private_key")

	rec = do(t, h, http.MethodDelete, "/wallet", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/wallet/exists", "")
	assert.JSONEq(t, `{"exists":false}`, rec.Body.String())
}

func TestWalletStore(t *testing.T) {
	h := newRouter(t, &fakeAztec{})

	rec := do(t, h, http.MethodPost, "/wallet/store", `{"wallet":{"private_key":"abc","address":"0x1"},"pin":"111111"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodPost, "/wallet/unlock", `{"pin":"111111"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"0x1"}`, rec.Body.String())
}

func TestWalletBadRequests(t *testing.T) {
	h := newRouter(t, &fakeAztec{})

	rec := do(t, h, http.MethodPost, "/wallet/unlock", `{"pin":"12"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PIN", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/wallet/unlock", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/wallet/unlock", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAztecPassthrough(t *testing.T) {
	aztec := &fakeAztec{result: json.RawMessage(`{"success":true,"message":"Aztec sidecar is running"}`)}
	h := newRouter(t, aztec)

	rec := do(t, h, http.MethodPost, "/aztec/test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Aztec sidecar is running"}`, rec.Body.String())
	assert.Equal(t, "test", aztec.method)
	assert.Nil(t, aztec.params)

	rec = do(t, h, http.MethodPost, "/aztec/initialize", `{"params":{"nodeUrl":"http://localhost:8080"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "initialize", aztec.method)
	raw, ok := aztec.params.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"nodeUrl":"http://localhost:8080"}`, string(raw))

	rec = do(t, h, http.MethodPost, "/aztec/getAddress", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAztecErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&client.SidecarError{Code: -32000, Message: "PXE not initialized"}, http.StatusBadGateway, "SIDECAR_ERROR"},
		{client.ErrTimeout, http.StatusGatewayTimeout, "SIDECAR_TIMEOUT"},
		{client.ErrNoResponse, http.StatusBadGateway, "SIDECAR_UNAVAILABLE"},
		{client.ErrSpawn, http.StatusBadGateway, "SIDECAR_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			h := newRouter(t, &fakeAztec{err: tt.err})

			rec := do(t, h, http.MethodPost, "/aztec/createAccount", "")
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}
