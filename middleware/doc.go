// Package middleware gates net/http handlers on session state and
// permissions, for deployments that embed the SDK in a server-rendered
// console.
//
// [RequireAuth] redirects unauthenticated visitors to the login entry
// point; [RequirePermission] and [RequireRole] answer 403 when the current
// user fails the check. The checks re-evaluate the session on every
// request — nothing is cached in the request context beyond the user
// snapshot.
package middleware
