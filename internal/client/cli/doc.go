// Package cli provides the interactive LegeClair command-line client.
//
// It wires configuration, session storage, the API client, and an
// interactive REPL that mirrors the web application's views: a documents
// table and an audits table, each with filters, sorting, pagination and
// multi-selection, plus the authentication lifecycle.
//
// Key features:
//   - Login / Register / Logout, with "remember me" persisted across runs
//   - Navigation between views through the route guard ("go <path>")
//   - Documents: list, create, show, update, delete, bulk delete, stats
//   - Audits: list, create from a URL or a local file, show, update,
//     delete, bulk delete, re-run as a new version, stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
