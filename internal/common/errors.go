// Package common contains shared sentinel errors and small utilities used
// across the LegeClair client packages. Callers match errors with errors.Is.
package common

import "errors"

var (
	// ErrNotFound is returned when an entity id matches nothing, either
	// locally (store-level pre-checks) or remotely (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers rejected credentials and expired/invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers network failures and timeouts reaching the API.
	ErrUnavailable = errors.New("server unavailable")

	// ErrAlreadyExists covers duplicate email/username on registration.
	ErrAlreadyExists = errors.New("already exists")

	// ErrCorruptData marks an unparseable persisted payload.
	ErrCorruptData = errors.New("corrupt stored data")
)
