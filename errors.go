package aulasdk

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	// The backend's own detail message is attached to the chain.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginInFlight is returned when a login starts while another login
	// or the startup rehydration is still running.
	ErrLoginInFlight = errors.New("login already in flight")
	// ErrUnauthenticated is returned when an operation needs an
	// authenticated session and none is held.
	ErrUnauthenticated = errors.New("not authenticated")
)
