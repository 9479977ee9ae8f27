package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Juan-JM/aulasdk/internal/events"
	"github.com/Juan-JM/aulasdk/internal/metrics"
	"github.com/Juan-JM/aulasdk/jwt"
)

// ErrNoRefreshToken is recorded when a 401 arrives and no refresh token is
// held; the session cannot be recovered without a new login.
var ErrNoRefreshToken = errors.New("no refresh token held")

// RefreshFunc exchanges a refresh token for a new access token at the
// backend's refresh endpoint. It must NOT travel through the authorized
// transport itself.
type RefreshFunc func(ctx context.Context, refreshToken string) (string, error)

// Deps captures everything the transport needs from the session layer.
// Function fields keep the package free of upward imports; the root client
// wires them to the session store at composition time.
type Deps struct {
	// Base performs the actual HTTP exchange. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	AccessToken      func() string
	RefreshToken     func() string
	StoreAccessToken func(ctx context.Context, token string) error
	ClearSession     func(ctx context.Context) error

	Refresh RefreshFunc

	// OnSessionExpired is the navigate-to-login signal. Called once per
	// unrecoverable authorization failure, after the session is cleared.
	OnSessionExpired func()

	// ProactiveWindow refreshes ahead of the access token's expiry claim
	// instead of waiting for a 401. Zero disables the check.
	ProactiveWindow time.Duration

	Metrics *metrics.Metrics
	Events  *events.Dispatcher
}

// Authorized is the bearer-attaching, retry-once http.RoundTripper.
type Authorized struct {
	deps Deps

	mu       sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// New creates an [Authorized] transport. Refresh, AccessToken, RefreshToken,
// StoreAccessToken, and ClearSession must all be set.
func New(deps Deps) (*Authorized, error) {
	if deps.Refresh == nil || deps.AccessToken == nil || deps.RefreshToken == nil ||
		deps.StoreAccessToken == nil || deps.ClearSession == nil {
		return nil, errors.New("transport: incomplete deps")
	}
	if deps.Base == nil {
		deps.Base = http.DefaultTransport
	}
	return &Authorized{deps: deps}, nil
}

// RoundTrip implements http.RoundTripper.
func (a *Authorized) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := a.roundTrip(req)
	a.deps.Metrics.Observe(metrics.MetricRequestLatency, time.Since(start))
	return resp, err
}

func (a *Authorized) roundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token := a.deps.AccessToken()
	if token != "" && a.deps.ProactiveWindow > 0 {
		// Best effort: an unparseable or soon-expiring token falls back to
		// the 401 path, which is authoritative.
		if claims, err := jwt.ParseUnverified(token); err == nil && claims.ExpiresWithin(a.deps.ProactiveWindow) {
			if fresh, err := a.refreshAccess(ctx); err == nil {
				token = fresh
			}
		}
	}

	out := a.prepare(req, token)
	resp, err := a.deps.Base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || token == "" {
		return resp, err
	}

	// First 401: buffer the body so the original failure can still be
	// delivered if recovery fails.
	body, readErr := drain(resp)
	if readErr != nil {
		return nil, readErr
	}

	fresh, refreshErr := a.refreshAccess(ctx)
	if refreshErr != nil {
		a.expire(ctx)
		restore(resp, body)
		return resp, nil
	}

	replay, ok := a.replayable(req)
	if !ok {
		restore(resp, body)
		return resp, nil
	}

	a.deps.Metrics.Inc(metrics.MetricRequestRetried)
	a.deps.Events.Emit(ctx, events.Event{
		EventType: events.TypeRequestRetried,
		Success:   true,
		Metadata:  map[string]string{"path": req.URL.Path},
	})

	retried := a.prepare(replay, fresh)
	resp2, err := a.deps.Base.RoundTrip(retried)
	if err != nil {
		return nil, err
	}
	if resp2.StatusCode == http.StatusUnauthorized {
		// The refreshed token was rejected too; the retried flag is spent,
		// so no further refresh happens for this logical request.
		a.expire(ctx)
	}
	return resp2, nil
}

// prepare clones the request and attaches headers. The clone keeps
// RoundTrip within its no-mutation contract.
func (a *Authorized) prepare(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}
	return out
}

// replayable produces a second clone with a rewound body, or reports that
// the request cannot be safely resent.
func (a *Authorized) replayable(req *http.Request) (*http.Request, bool) {
	if req.Body == nil || req.Body == http.NoBody {
		return req.Clone(req.Context()), true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	out := req.Clone(req.Context())
	out.Body = body
	return out, true
}

// refreshAccess coalesces concurrent refresh attempts into one in-flight
// exchange. The winner stores the new access token before releasing the
// waiters, so every replay observes the fresh token.
func (a *Authorized) refreshAccess(ctx context.Context) (string, error) {
	a.mu.Lock()
	if call := a.inflight; call != nil {
		a.mu.Unlock()
		a.deps.Metrics.Inc(metrics.MetricRefreshCoalesced)
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	a.inflight = call
	a.mu.Unlock()

	call.token, call.err = a.doRefresh(ctx)

	a.mu.Lock()
	a.inflight = nil
	a.mu.Unlock()
	close(call.done)

	return call.token, call.err
}

func (a *Authorized) doRefresh(ctx context.Context) (string, error) {
	refreshToken := a.deps.RefreshToken()
	if refreshToken == "" {
		a.deps.Metrics.Inc(metrics.MetricRefreshFailure)
		return "", ErrNoRefreshToken
	}

	token, err := a.deps.Refresh(ctx, refreshToken)
	if err != nil {
		a.deps.Metrics.Inc(metrics.MetricRefreshFailure)
		a.deps.Events.Emit(ctx, events.Event{
			EventType: events.TypeRefreshFailed,
			Error:     err.Error(),
		})
		return "", err
	}

	if err := a.deps.StoreAccessToken(ctx, token); err != nil {
		a.deps.Metrics.Inc(metrics.MetricRefreshFailure)
		return "", err
	}

	a.deps.Metrics.Inc(metrics.MetricRefreshSuccess)
	a.deps.Events.Emit(ctx, events.Event{
		EventType: events.TypeRefresh,
		Success:   true,
	})
	return token, nil
}

// expire clears the session and raises the navigate-to-login signal. Clear
// is idempotent, so overlapping expirations are harmless.
func (a *Authorized) expire(ctx context.Context) {
	_ = a.deps.ClearSession(ctx)
	a.deps.Metrics.Inc(metrics.MetricSessionCleared)
	a.deps.Events.Emit(ctx, events.Event{
		EventType: events.TypeSessionExpired,
	})
	if a.deps.OnSessionExpired != nil {
		a.deps.OnSessionExpired()
	}
}

func drain(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func restore(resp *http.Response, body []byte) {
	resp.Body = io.NopCloser(bytes.NewReader(body))
}
