package aulasdk

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Juan-JM/aulasdk/api"
	"github.com/Juan-JM/aulasdk/internal/events"
	internalmetrics "github.com/Juan-JM/aulasdk/internal/metrics"
	"github.com/Juan-JM/aulasdk/permission"
	"github.com/Juan-JM/aulasdk/session"
)

// Client is the composed console core: session store, authorized transport,
// permission checks, and the typed resource services. Construct through
// [Builder.Build], then await [Client.Initialize] once before making
// authorization decisions.
type Client struct {
	cfg   Config
	store *session.Store

	api  *api.Client // rides the authorized transport
	bare *api.Client // login + refresh path, no bearer handling

	metrics   *internalmetrics.Metrics
	events    *events.Dispatcher
	onExpired func()

	initOnce sync.Once
	initErr  error
}

// Initialize performs the startup rehydration: when a persisted token pair
// exists, the profile is fetched and the session becomes Authenticated;
// when the fetch fails, the persisted tokens are erased and the session
// becomes Unauthenticated; with nothing persisted it goes straight to
// Unauthenticated.
//
// It runs exactly once per client; later calls return the first outcome.
// Await it before any UI collaborator consults session state.
func (c *Client) Initialize(ctx context.Context) error {
	c.initOnce.Do(func() {
		c.initErr = c.initialize(ctx)
	})
	return c.initErr
}

func (c *Client) initialize(ctx context.Context) error {
	if err := c.store.BeginAuthenticating(); err != nil {
		return err
	}

	found, err := c.store.LoadPersisted(ctx)
	if err != nil {
		c.store.MarkUnauthenticated()
		return fmt.Errorf("load persisted tokens: %w", err)
	}
	if !found {
		c.store.MarkUnauthenticated()
		return nil
	}

	// Ride the authorized transport: a stale access token gets one refresh
	// attempt for free, and an unrecoverable failure already clears the
	// persisted pair.
	user, err := c.api.Auth().Me(ctx)
	if err != nil {
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			log.Print("aulasdk: clearing session after failed rehydration failed")
		}
		return fmt.Errorf("rehydrate session: %w", err)
	}

	pair := session.TokenPair{
		Access:  c.store.AccessToken(),
		Refresh: c.store.RefreshToken(),
	}
	if err := c.store.SetSession(ctx, pair, user); err != nil {
		return fmt.Errorf("rehydrate session: %w", err)
	}

	c.metrics.Inc(internalmetrics.MetricSessionRehydrated)
	c.events.Emit(ctx, events.Event{
		EventType: events.TypeSessionRehydrated,
		Username:  user.Username,
		Success:   true,
	})
	return nil
}

// Login authenticates against the backend. On success both tokens are
// persisted and the session becomes Authenticated. On failure the session
// becomes Unauthenticated and the backend's rejection detail rides the
// returned error; rejected credentials match [ErrInvalidCredentials] with
// errors.Is.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	if err := c.store.BeginAuthenticating(); err != nil {
		return nil, ErrLoginInFlight
	}

	resp, err := c.bare.Auth().Login(ctx, creds)
	if err != nil {
		c.store.MarkUnauthenticated()
		c.metrics.Inc(internalmetrics.MetricLoginFailure)
		c.events.Emit(ctx, events.Event{
			EventType: events.TypeLoginFailed,
			Username:  creds.Username,
			Error:     err.Error(),
		})
		if api.IsAuthError(err) {
			return nil, fmt.Errorf("login: %w: %w", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.User == nil || resp.Access == "" || resp.Refresh == "" {
		c.store.MarkUnauthenticated()
		c.metrics.Inc(internalmetrics.MetricLoginFailure)
		return nil, fmt.Errorf("login: backend returned incomplete session")
	}

	pair := session.TokenPair{Access: resp.Access, Refresh: resp.Refresh}
	if err := c.store.SetSession(ctx, pair, resp.User); err != nil {
		c.store.MarkUnauthenticated()
		return nil, fmt.Errorf("login: %w", err)
	}

	c.metrics.Inc(internalmetrics.MetricLoginSuccess)
	c.events.Emit(ctx, events.Event{
		EventType: events.TypeLogin,
		Username:  resp.User.Username,
		Success:   true,
	})
	return resp.User.Clone(), nil
}

// Logout best-effort informs the backend so the refresh token is
// invalidated, then unconditionally erases the local session. A failed
// backend notification is logged, never surfaced; calling Logout on an
// already-cleared session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	username := ""
	if u := c.store.User(); u != nil {
		username = u.Username
	}

	if refreshToken := c.store.RefreshToken(); refreshToken != "" {
		if err := c.api.Auth().Logout(ctx, refreshToken); err != nil {
			log.Print("aulasdk: backend logout notification failed")
		}
	}

	if err := c.store.Clear(ctx); err != nil {
		return err
	}

	c.metrics.Inc(internalmetrics.MetricLogout)
	c.events.Emit(ctx, events.Event{
		EventType: events.TypeLogout,
		Username:  username,
		Success:   true,
	})
	return nil
}

// UpdateUser replaces the held profile in place without touching tokens or
// status. Used after a profile edit made through the resource APIs.
func (c *Client) UpdateUser(user *User) {
	c.store.SetUser(user)
}

// UpdateProfile edits the authenticated profile on the backend and adopts
// the stored representation.
func (c *Client) UpdateProfile(ctx context.Context, in api.ProfileInput) (*User, error) {
	if c.store.Status() != session.StatusAuthenticated {
		return nil, ErrUnauthenticated
	}
	user, err := c.api.Auth().UpdateMe(ctx, in)
	if err != nil {
		return nil, err
	}
	c.store.SetUser(user)
	return user.Clone(), nil
}

// Status returns the session lifecycle state.
func (c *Client) Status() Status {
	return c.store.Status()
}

// CurrentUser returns a snapshot of the authenticated profile, or nil.
func (c *Client) CurrentUser() *User {
	return c.store.User()
}

func (c *Client) principal() *permission.Principal {
	u := c.store.User()
	if u == nil {
		return nil
	}
	return &permission.Principal{
		Roles:       u.Groups,
		Permissions: u.Permissions,
	}
}

// HasPermission evaluates the named permission against the current user.
// False when unauthenticated; unconditionally true for administrators.
func (c *Client) HasPermission(perm string) bool {
	return permission.HasPermission(c.principal(), perm)
}

// HasRole reports whether the current user holds the named role.
func (c *Client) HasRole(role string) bool {
	return permission.HasRole(c.principal(), role)
}

// Can evaluates one resource action for the current user, including the
// implicit role grants of the resource catalog.
func (c *Client) Can(resource permission.Resource, action permission.Action) bool {
	return permission.Can(c.principal(), resource, action)
}

// API exposes the typed resource services riding the authorized transport.
func (c *Client) API() *api.Client {
	return c.api
}

func (c *Client) notifySessionExpired() {
	if c.onExpired != nil {
		c.onExpired()
	}
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.TakeSnapshot()
}

// EventsDropped returns the count of lifecycle events lost to backpressure.
func (c *Client) EventsDropped() uint64 {
	return c.events.Dropped()
}

// Close drains and stops the event dispatcher. The client is unusable for
// event emission afterwards; requests still work.
func (c *Client) Close() {
	c.events.Close()
}
