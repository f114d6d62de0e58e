// Package store implements the client-side entity collection stores.
//
// # Overview
//
// A collection store caches the server's entity list and derives
// filtered/sorted/paginated views from it without re-fetching on every
// filter, sort, or page change. The derivation is a pure pipeline over the
// raw collection and the current view state:
//
//	raw -> filter (conjunction of active criteria)
//	    -> stable sort (configured key and direction)
//	    -> page slice
//
// Two stores exist, one per entity kind: DocumentStore and AuditStore. They
// share the generic pipeline helpers and the selection set; filtering rules,
// sort-field access and aggregate statistics are kind-specific.
//
// # Mutation rules
//
// Fetch replaces the raw collection and adopts the server-reported total.
// Create prepends (most-recent-first). Update replaces in place and aborts
// locally with "not found" when the id is unknown. Delete removes one entity
// and prunes it from the selection; bulk delete removes many and clears the
// selection entirely. A failed operation never partially mutates the
// collection.
//
// # Concurrency
//
// Overlapping operations are allowed and settle in resolution order (last
// settled write wins); there is no in-flight deduplication or cancellation.
// A mutex keeps each settlement atomic.
package store
