package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/covenant-gov/1key/internal/client"
	"github.com/covenant-gov/1key/internal/model"
)

// AztecCaller forwards a method to the sidecar. *client.AztecClient implements it.
type AztecCaller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

// AztecHandler forwards /aztec/{method} requests to the sidecar.
type AztecHandler struct {
	aztec AztecCaller
}

// NewAztecHandler creates a new AztecHandler
func NewAztecHandler(aztec AztecCaller) *AztecHandler {
	return &AztecHandler{aztec: aztec}
}

// Call handles POST /aztec/{method}
// @Summary      Call sidecar method
// @Description  Sends one request to a fresh sidecar process and returns its result as-is
// @Tags         aztec
// @Accept       json
// @Produce      json
// @Param        method   path      string                    true   "Sidecar method, e.g. createAccount"
// @Param        request  body      model.SidecarCallRequest  false  "Method params"
// @Success      200      {object}  object
// @Failure      502      {object}  model.ErrorResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /aztec/{method} [post]
func (h *AztecHandler) Call(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	method := strings.TrimPrefix(r.URL.Path, "/aztec/")
	if !client.IsKnownMethod(method) {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "unknown sidecar method: " + method, Code: "UNKNOWN_METHOD"})
		return
	}

	var req model.SidecarCallRequest
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	var params any
	if len(req.Params) > 0 {
		params = req.Params
	}

	result, err := h.aztec.Call(r.Context(), method, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}
