package client

import (
	"context"
	"encoding/json"
)

// Sidecar method names. Payloads are owned by the sidecar and passed through as-is.
const (
	MethodInitialize             = "initialize"
	MethodCreateAccount          = "createAccount"
	MethodConnectExistingAccount = "connectExistingAccount"
	MethodDeployAccount          = "deployAccount"
	MethodTest                   = "test"
	MethodDeployPasswordManager  = "deployPasswordManager"
	MethodCreatePasswordEntry    = "createPasswordEntry"
	MethodGetPasswordEntryIDs    = "getPasswordEntryIds"
	MethodGetPasswordEntryByID   = "getPasswordEntryById"
	MethodUpdatePasswordEntry    = "updatePasswordEntry"
	MethodDeletePasswordEntry    = "deletePasswordEntry"
)

var knownMethods = map[string]struct{}{
	MethodInitialize:             {},
	MethodCreateAccount:          {},
	MethodConnectExistingAccount: {},
	MethodDeployAccount:          {},
	MethodTest:                   {},
	MethodDeployPasswordManager:  {},
	MethodCreatePasswordEntry:    {},
	MethodGetPasswordEntryIDs:    {},
	MethodGetPasswordEntryByID:   {},
	MethodUpdatePasswordEntry:    {},
	MethodDeletePasswordEntry:    {},
}

// IsKnownMethod reports whether method is one the Aztec sidecar understands.
func IsKnownMethod(method string) bool {
	_, ok := knownMethods[method]
	return ok
}

// Caller sends one request to a sidecar. *SidecarClient implements it.
type Caller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

var _ Caller = (*SidecarClient)(nil)

// AztecClient exposes the Aztec sidecar methods with typed parameters.
type AztecClient struct {
	sidecar Caller
}

// NewAztecClient creates a new AztecClient on top of sidecar.
func NewAztecClient(sidecar Caller) *AztecClient {
	return &AztecClient{sidecar: sidecar}
}

// PasswordEntry is the payload of createPasswordEntry and updatePasswordEntry.
type PasswordEntry struct {
	ContractAddress string `json:"contractAddress"`
	Label           string `json:"label"`
	Password        string `json:"password"`
	ID              uint64 `json:"id"`
	Randomness      uint64 `json:"randomness"`
}

// Call sends an arbitrary method, for passthrough from the API.
func (a *AztecClient) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, method, params)
}

// Initialize connects the sidecar to an Aztec node.
func (a *AztecClient) Initialize(ctx context.Context, nodeURL string) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodInitialize, map[string]any{"nodeUrl": nodeURL})
}

// CreateAccount creates a new Aztec account.
func (a *AztecClient) CreateAccount(ctx context.Context) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodCreateAccount, nil)
}

// ConnectExistingAccount connects an account from previously created credentials.
func (a *AztecClient) ConnectExistingAccount(ctx context.Context, credentials json.RawMessage) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodConnectExistingAccount, map[string]any{"credentials": credentials})
}

// DeployAccount deploys the connected account.
func (a *AztecClient) DeployAccount(ctx context.Context) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodDeployAccount, nil)
}

// Test checks that the sidecar starts and answers.
func (a *AztecClient) Test(ctx context.Context) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodTest, nil)
}

// DeployPasswordManager deploys the PasswordManager contract.
func (a *AztecClient) DeployPasswordManager(ctx context.Context) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodDeployPasswordManager, nil)
}

// CreatePasswordEntry stores a new password entry.
func (a *AztecClient) CreatePasswordEntry(ctx context.Context, entry PasswordEntry) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodCreatePasswordEntry, entry)
}

// GetPasswordEntryIDs lists entry ids starting at offset.
func (a *AztecClient) GetPasswordEntryIDs(ctx context.Context, contractAddress string, offset uint64) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodGetPasswordEntryIDs, map[string]any{
		"contractAddress": contractAddress,
		"offset":          offset,
	})
}

// GetPasswordEntryByID fetches one entry.
func (a *AztecClient) GetPasswordEntryByID(ctx context.Context, contractAddress string, id, offset uint64) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodGetPasswordEntryByID, map[string]any{
		"contractAddress": contractAddress,
		"id":              id,
		"offset":          offset,
	})
}

// UpdatePasswordEntry replaces an existing entry.
func (a *AztecClient) UpdatePasswordEntry(ctx context.Context, entry PasswordEntry) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodUpdatePasswordEntry, entry)
}

// DeletePasswordEntry removes an entry.
func (a *AztecClient) DeletePasswordEntry(ctx context.Context, contractAddress string, id uint64) (json.RawMessage, error) {
	return a.sidecar.Call(ctx, MethodDeletePasswordEntry, map[string]any{
		"contractAddress": contractAddress,
		"id":              id,
	})
}
