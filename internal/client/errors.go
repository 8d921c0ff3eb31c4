package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn is returned when the sidecar process cannot be started.
	ErrSpawn = errors.New("failed to spawn sidecar")
	// ErrProtocol is returned when the sidecar writes something that is not a JSON line.
	ErrProtocol = errors.New("sidecar protocol error")
	// ErrNoResponse is returned when the sidecar closes stdout without answering.
	ErrNoResponse = errors.New("no response from sidecar")
	// ErrTimeout is returned when the call deadline expires; the sidecar is killed.
	ErrTimeout = errors.New("sidecar call timed out")
)

// SidecarError is an error reported by the sidecar itself. Code, Message and
// Data are passed through verbatim.
type SidecarError struct {
	Code    int
	Message string
	Data    string
}

func (e *SidecarError) Error() string {
	return fmt.Sprintf("sidecar error: %s (code: %d)", e.Message, e.Code)
}

// IsSidecarError checks if err is (or wraps) a SidecarError
func IsSidecarError(err error) bool {
	var se *SidecarError
	return errors.As(err, &se)
}
