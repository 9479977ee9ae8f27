// Package permission evaluates role and permission checks for the Aula
// Inteligente console.
//
// Permission strings are opaque dotted identifiers in the backend's
// "<app>.<action>_<entity>" convention (e.g. "students.view_estudiante");
// the evaluator only ever tests set membership, never parses structure.
// Role names are matched by exact value. The "Administrador" role satisfies
// every permission check unconditionally.
//
// # Architecture boundaries
//
// This package is a pure in-memory decision function with no I/O and no
// caching: every call re-evaluates from the principal snapshot it is given.
//
// # What this package must NOT do
//
//   - Access the network, the session store, or durable state.
//   - Import aulasdk, session, or transport.
//   - Cache or memoize decisions across calls.
package permission
