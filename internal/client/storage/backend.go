// Package storage implements the persistence media for the client session.
//
// A session is persisted as two keys (user JSON and opaque token) duplicated
// across media: a durable backend that survives restarts (SQLite) and an
// ephemeral backend scoped to the process (in-memory). Reads go through a
// Chain that tries the durable medium first and falls back to the ephemeral
// one.
package storage

import "context"

// Storage keys for the persisted session. The same keys are used on every
// medium; a session lives on exactly one of them at a time.
const (
	Namespace = "legeclair"
	KeyUser   = Namespace + "_user"
	KeyToken  = Namespace + "_token"
)

// Backend is a small key/value store. Get returns (nil, nil) when the key is
// absent. SetAll writes several keys atomically, so a persisted session can
// never be half-written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
