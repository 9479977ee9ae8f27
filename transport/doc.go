// Package transport wraps an http.RoundTripper with bearer-token attachment
// and transparent recovery from expired access tokens.
//
// # Retry contract
//
// Every request carries the current access token when one exists; requests
// without a token pass through untouched (the login call itself travels this
// path). A 401 response triggers at most one token refresh and one replay of
// the original request. A second 401, a missing refresh token, or a failed
// refresh clears the session and raises the session-expired signal; the
// original failure still propagates to the caller.
//
// # Refresh coalescing
//
// Concurrent 401s share a single in-flight refresh call: the first caller
// performs the exchange, everyone else waits on the same result. The new
// access token is stored before any waiter is released, so a replay can
// never race a stale token past the refresh boundary.
package transport
