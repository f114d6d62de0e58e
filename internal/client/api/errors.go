package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aGautrain/legeclair/internal/common"
)

// RemoteError is an envelope-level failure reported by the backend. Message
// is the server's own human-readable text; Status is the HTTP status code.
// Unwrap yields a sentinel from internal/common when the status maps to one.
type RemoteError struct {
	Status  int
	Message string
	err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.err
}

// AsRemote extracts a *RemoteError from an error chain, if present.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	ok := errors.As(err, &re)
	return re, ok
}

// NewRemoteError builds a RemoteError, attaching the sentinel matching the
// status code when there is one.
func NewRemoteError(status int, message string) *RemoteError {
	return &RemoteError{Status: status, Message: message, err: sentinelFor(status)}
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	default:
		return nil
	}
}
