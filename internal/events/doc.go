// Package events carries the session lifecycle event stream: logins,
// logouts, token refreshes, and forced session expiry. The expiry event is
// the signal UI embedders watch to navigate back to the login entry point.
//
// Events are forwarded to a caller-supplied Sink through an asynchronous
// dispatcher so a slow sink can never stall a request path; when the buffer
// is full and DropIfFull is set, events are counted as dropped instead of
// blocking.
package events
