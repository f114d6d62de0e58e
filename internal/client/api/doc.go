// Package api contains the client-side contract for the LegeClair backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface, split into
//     AuthAPI, DocumentsAPI and AuditsAPI) covering authentication, document
//     and audit CRUD, bulk deletion, server-side stats, audit versioning and
//     a liveness probe.
//  2. A concrete HTTP implementation (see HTTPClient) that talks JSON to the
//     REST backend, injects a bearer token on every request, reacts to 401
//     responses by wiping the persisted session, and maps response statuses
//     to sentinel errors.
//
// # Error Handling
//
// Envelope-level failures are returned as *RemoteError carrying the server's
// own message; transport and status conditions are exposed through the
// sentinels in internal/common (ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrAlreadyExists) matchable with errors.Is.
//
// All operations accept context.Context and honor cancellation/timeouts.
package api
