// Package jwt inspects the backend's access tokens on the client side.
//
// The console never holds the backend's signing key, so tokens are parsed
// WITHOUT signature verification — the only consumer is the transport's
// proactive-refresh check, which wants the expiry claim. Authorization
// decisions are always made by the backend; a forged expiry only causes an
// extra (harmless) refresh or an extra 401 round-trip.
//
// # What this package must NOT do
//
//   - Treat a parsed token as proof of anything.
//   - Import aulasdk, session, or transport.
package jwt
