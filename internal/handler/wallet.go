package handler

import (
	"net/http"

	"github.com/covenant-gov/1key/internal/model"
	"github.com/covenant-gov/1key/wallet"
)

// WalletHandler serves the wallet endpoints.
type WalletHandler struct {
	svc *wallet.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Exists handles GET /wallet/exists
// @Summary      Check wallet
// @Description  Reports whether an encrypted wallet is stored
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ExistsResponse
// @Router       /wallet/exists [get]
func (h *WalletHandler) Exists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	exists, err := h.svc.Exists()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ExistsResponse{Exists: exists})
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new keypair and stores it encrypted with the PIN
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PINRequest  true  "6-digit PIN"
// @Success      200      {object}  model.GenerateResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PINRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin) // Always clear PIN from memory

	address, qrCode, err := h.svc.Generate(pin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
		QR:      qrCode,
	})
}

// Store handles POST /wallet/store
// @Summary      Encrypt and store wallet
// @Description  Encrypts the given wallet with the PIN, replacing any stored wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.StoreRequest  true  "Wallet and PIN"
// @Success      204
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/store [post]
func (h *WalletHandler) Store(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.StoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin)

	if err := h.svc.EncryptAndStore(&req.Wallet, pin); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unlock handles POST /wallet/unlock
// @Summary      Unlock wallet
// @Description  Decrypts the stored wallet with the PIN and returns its address
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PINRequest  true  "6-digit PIN"
// @Success      200      {object}  model.UnlockResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PINRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin)

	walletData, err := h.svc.DecryptWithPIN(pin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.UnlockResponse{Address: walletData.Address})
}

// Delete handles DELETE /wallet
// @Summary      Delete wallet
// @Description  Removes the stored wallet; succeeds when none is stored
// @Tags         wallet
// @Success      204
// @Router       /wallet [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	if err := h.svc.Delete(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
