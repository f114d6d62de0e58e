package store

import "github.com/aGautrain/legeclair/internal/client/api"

// messageOf prefers the server-provided message of a remote failure over the
// generic per-operation fallback.
func messageOf(fallback string, err error) string {
	if re, ok := api.AsRemote(err); ok && re.Message != "" {
		return re.Message
	}
	return fallback
}
