package model

import "errors"

// ErrFormat is returned when stored or transmitted data does not parse as the expected shape.
var ErrFormat = errors.New("malformed data")

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
