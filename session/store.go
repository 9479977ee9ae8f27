package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAuthenticationInFlight is returned by [Store.BeginAuthenticating] when a
// login or rehydration is already running. At most one Authenticating
// transition may be in flight at a time.
var ErrAuthenticationInFlight = errors.New("authentication already in flight")

// Store is the single authoritative holder of authentication state. All
// mutation goes through its methods; it is safe for concurrent use.
//
// The store maintains the invariant that the status is
// [StatusAuthenticated] if and only if both tokens and the user profile are
// present.
type Store struct {
	storage TokenStorage

	mu     sync.RWMutex
	status Status
	tokens TokenPair
	user   *User
}

// NewStore creates an empty store in [StatusUninitialized]. storage must be
// non-nil; it is the durable home of the token pair.
func NewStore(storage TokenStorage) *Store {
	return &Store{
		storage: storage,
		status:  StatusUninitialized,
	}
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns a snapshot of the authenticated profile, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// AccessToken returns the current access token, or "" when absent.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Access
}

// RefreshToken returns the current refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Refresh
}

// BeginAuthenticating transitions to [StatusAuthenticating]. It fails with
// [ErrAuthenticationInFlight] when another login or rehydration holds the
// transition, so concurrent logins cannot race.
func (s *Store) BeginAuthenticating() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusAuthenticating {
		return ErrAuthenticationInFlight
	}
	s.status = StatusAuthenticating
	return nil
}

// LoadPersisted reads the token pair from durable storage into memory
// without changing status. It reports whether a pair was found.
func (s *Store) LoadPersisted(ctx context.Context) (bool, error) {
	pair, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoTokens) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.tokens = pair
	s.mu.Unlock()
	return true, nil
}

// SetSession installs a full authenticated session: both tokens are
// persisted, the profile is stored, and the status becomes
// [StatusAuthenticated]. user must be non-nil and the pair complete.
func (s *Store) SetSession(ctx context.Context, pair TokenPair, user *User) error {
	if user == nil || pair.Access == "" || pair.Refresh == "" {
		return errors.New("session requires both tokens and a user")
	}
	if err := s.storage.Save(ctx, pair); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}

	s.mu.Lock()
	s.tokens = pair
	s.user = user.Clone()
	s.status = StatusAuthenticated
	s.mu.Unlock()
	return nil
}

// SetAccessToken overwrites only the access token, leaving the refresh token
// and profile untouched. Used after a token refresh. The new pair is
// persisted so a restart picks up the fresh access token.
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.tokens.Access = token
	pair := s.tokens
	s.mu.Unlock()

	if err := s.storage.Save(ctx, pair); err != nil {
		return fmt.Errorf("persist refreshed token: %w", err)
	}
	return nil
}

// SetUser replaces the profile in place without touching tokens or status.
// Used after profile edits. A nil user is ignored; clearing the profile is
// Clear's job.
func (s *Store) SetUser(user *User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	s.user = user.Clone()
	s.mu.Unlock()
}

// MarkUnauthenticated moves to [StatusUnauthenticated] without touching
// durable storage. Used when startup finds no persisted tokens.
func (s *Store) MarkUnauthenticated() {
	s.mu.Lock()
	s.status = StatusUnauthenticated
	s.user = nil
	s.tokens = TokenPair{}
	s.mu.Unlock()
}

// Clear erases the whole session: in-memory tokens and profile plus the
// persisted pair, then transitions to [StatusUnauthenticated]. Clearing an
// already-cleared session is a no-op, so the operation is idempotent. The
// in-memory state is dropped even when storage deletion fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.tokens = TokenPair{}
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted tokens: %w", err)
	}
	return nil
}
