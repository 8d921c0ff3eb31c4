package model

// PINRequest represents request for POST /wallet/generate and /wallet/unlock
type PINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// StoreRequest represents request for POST /wallet/store
type StoreRequest struct {
	Wallet WalletData `json:"wallet" binding:"required"`
	PIN    string     `json:"pin" binding:"required"`
}

// ExistsResponse represents response for GET /wallet/exists
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// UnlockResponse represents response for POST /wallet/unlock.
// The private key is never sent back over the API.
type UnlockResponse struct {
	Address string `json:"address"`
}
