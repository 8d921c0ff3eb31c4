package model

import "encoding/json"

// SidecarRequest is one request line written to the worker's stdin.
type SidecarRequest struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// SidecarResponse is one response line read from the worker's stdout.
// Exactly one of Result and Error is set on a well-formed response.
// Ready is only set on the startup handshake line {"ready":true}.
type SidecarResponse struct {
	ID     *uint64         `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RPCError       `json:"error,omitempty"`
	Ready  bool            `json:"ready,omitempty"`
}

// RPCError is the error object reported by the worker.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// SidecarCallRequest represents request for POST /aztec/...
type SidecarCallRequest struct {
	Params json.RawMessage `json:"params,omitempty"`
}
