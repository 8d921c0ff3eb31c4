package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/covenant-gov/1key/internal/client"
	"github.com/covenant-gov/1key/internal/common"
	"github.com/covenant-gov/1key/internal/crypto"
	"github.com/covenant-gov/1key/internal/logging"
	"github.com/covenant-gov/1key/internal/model"
	"github.com/covenant-gov/1key/wallet"
)

// maxBodySize limits request bodies; wallet and sidecar payloads are small.
const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L.Warn("failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// classify maps domain errors to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	var sidecarErr *client.SidecarError
	switch {
	case errors.Is(err, common.ErrInvalidPIN):
		return http.StatusBadRequest, "INVALID_PIN"
	case errors.Is(err, crypto.ErrAuthentication):
		return http.StatusUnauthorized, "INCORRECT_PIN"
	case errors.Is(err, wallet.ErrNoWallet):
		return http.StatusNotFound, "NO_WALLET"
	case errors.Is(err, wallet.ErrWalletExists):
		return http.StatusConflict, "WALLET_EXISTS"
	case errors.Is(err, model.ErrFormat):
		return http.StatusInternalServerError, "CORRUPT_WALLET"
	case errors.As(err, &sidecarErr):
		return http.StatusBadGateway, "SIDECAR_ERROR"
	case errors.Is(err, client.ErrTimeout):
		return http.StatusGatewayTimeout, "SIDECAR_TIMEOUT"
	case errors.Is(err, client.ErrSpawn), errors.Is(err, client.ErrProtocol), errors.Is(err, client.ErrNoResponse):
		return http.StatusBadGateway, "SIDECAR_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, ""
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "BAD_REQUEST"})
		return false
	}
	return true
}
