// Package aulasdk is the authenticated client for the Aula Inteligente
// school-management backend: session lifecycle, bearer-token transport with
// automatic refresh, role/permission evaluation, and typed resource APIs
// for every console screen.
//
// The package is designed for concurrent embedders: Client methods are safe
// to call from multiple goroutines after construction through
// [Builder.Build] and a single awaited [Client.Initialize].
//
// # Architecture boundaries
//
// aulasdk is the public surface. It exposes [Client], [Builder], [Config],
// and value types (User, Credentials, MetricsSnapshot, etc.). Coordination
// internals — event dispatch, metric counters — live under internal/ and
// are never exported. The session store, authorized transport, permission
// evaluator, and resource services live in their own subpackages and are
// wired together here at composition time.
//
// # What this package must NOT do
//
//   - Render UI or perform navigation; the session-expired signal is a
//     callback, nothing more.
//   - Expose storage backends or transport internals in its public API.
//   - Import any sub-package that re-imports aulasdk (no import cycles).
package aulasdk
