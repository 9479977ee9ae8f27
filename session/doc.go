// Package session holds the process-wide authentication state for the Aula
// Inteligente console: the access/refresh token pair, the authenticated user
// profile, and the session status machine.
//
// # Persistence
//
// Only the two token strings are durable. They survive process restarts
// through a pluggable [TokenStorage]; the user profile and the in-memory
// status are re-derived on startup by the client's Initialize flow. Two
// storage backends ship with the package: [FileStorage] for workstation
// installs and [RedisStorage] for server-hosted console deployments.
//
// # Architecture boundaries
//
// This package owns the [Store] (state + persistence) and the [User] model.
// It does NOT talk to the backend, evaluate permissions, or decide when a
// refresh happens — those responsibilities belong to the client and the
// transport layer.
//
// # What this package must NOT do
//
//   - Import aulasdk, api, transport, or permission (no upward imports).
//   - Perform network calls other than token storage I/O.
//   - Expose direct field mutation; all state changes go through Store methods.
package session
