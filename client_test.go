package aulasdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Juan-JM/aulasdk/api"
	"github.com/Juan-JM/aulasdk/permission"
	"github.com/Juan-JM/aulasdk/session"
)

// fakeBackend is a minimal token-issuing school backend: login, refresh,
// profile, logout, and one resource collection, all gated on bearer tokens
// it issued itself.
type fakeBackend struct {
	mu          sync.Mutex
	validAccess map[string]bool
	refresh     string
	issued      int
	user        session.User

	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64
	rejectLogin  bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		validAccess: map[string]bool{},
		refresh:     "refresh-0",
		user: session.User{
			ID:          1,
			Username:    "admin",
			FirstName:   "Ada",
			LastName:    "Admin",
			Groups:      []string{permission.RoleAdministrador},
			Permissions: []string{},
			IsActive:    true,
		},
	}
}

func (b *fakeBackend) issueAccess() string {
	b.issued++
	token := "access-" + strings.Repeat("x", b.issued)
	b.validAccess[token] = true
	return token
}

// revokeAll invalidates every outstanding access token, simulating expiry.
func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.validAccess = map[string]bool{}
}

func (b *fakeBackend) revokeRefresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh = ""
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && b.validAccess[strings.TrimPrefix(auth, "Bearer ")]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/token/":
		var creds api.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		b.mu.Lock()
		reject := b.rejectLogin || creds.Username != "admin" || creds.Password != "secret"
		if reject {
			b.mu.Unlock()
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Credenciales inválidas"}`))
			return
		}
		access := b.issueAccess()
		refresh := b.refresh
		user := b.user
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(api.LoginResponse{
			Access: access, Refresh: refresh, User: &user,
		})

	case "/api/token/refresh/":
		b.refreshCalls.Add(1)
		var body struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		if b.refresh == "" || body.Refresh != b.refresh {
			b.mu.Unlock()
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token de refresco inválido"}`))
			return
		}
		access := b.issueAccess()
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"access": access})

	case "/api/users/me/":
		if !b.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token inválido o expirado"}`))
			return
		}
		b.mu.Lock()
		user := b.user
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(user)

	case "/api/logout/":
		b.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)

	case "/api/students/":
		if !b.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token inválido o expirado"}`))
			return
		}
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":1,"nombre":"Luis","apellido":"Rojas","curso":2,"activo":true}]}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func buildClient(t *testing.T, backend *fakeBackend, storagePath string) *Client {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := New().
		WithBaseURL(server.URL).
		WithTimeout(5 * time.Second).
		WithTokenStorage(session.NewFileStorage(storagePath)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestInitializeWithNothingPersisted(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))

	if err := client.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if client.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v, want unauthenticated", client.Status())
	}
	if client.CurrentUser() != nil {
		t.Fatal("no user expected")
	}
	if client.HasPermission("students.view_estudiante") {
		t.Fatal("unauthenticated client must deny every permission")
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	// A second call must be a memoized no-op, not a state transition.
	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if client.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v", client.Status())
	}
}

func TestLoginAdministrator(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	user, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if client.Status() != StatusAuthenticated {
		t.Fatalf("status = %v", client.Status())
	}
	if user.Username != "admin" {
		t.Fatalf("user = %+v", user)
	}
	// Administrators pass every permission check without explicit grants.
	if !client.HasPermission("grades.delete_nota") || !client.HasPermission("anything.at_all") {
		t.Fatal("administrator override not applied")
	}
	if !client.Can(permission.Grades, permission.ActionDelete) {
		t.Fatal("administrator must pass catalog checks too")
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := client.Login(ctx, Credentials{Username: "admin", Password: "wrong"})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	// The backend's human-readable detail must survive the wrapping.
	if !strings.Contains(err.Error(), "Credenciales inválidas") {
		t.Fatalf("rejection detail lost: %v", err)
	}
	if client.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v after failed login", client.Status())
	}
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	backend := newFakeBackend()
	path := filepath.Join(t.TempDir(), "creds.json")
	ctx := context.Background()

	first := buildClient(t, backend, path)
	if err := first.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	// A fresh client over the same credential file plays the restart.
	second := buildClient(t, backend, path)
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("rehydration failed: %v", err)
	}
	if second.Status() != StatusAuthenticated {
		t.Fatalf("status = %v after restart", second.Status())
	}
	if u := second.CurrentUser(); u == nil || u.Username != "admin" {
		t.Fatalf("user = %+v after restart", u)
	}
}

func TestInitializeRefreshesStaleAccessToken(t *testing.T) {
	backend := newFakeBackend()
	path := filepath.Join(t.TempDir(), "creds.json")
	ctx := context.Background()

	first := buildClient(t, backend, path)
	if err := first.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	// Simulate time passing: the access token expires, the refresh token
	// stays valid.
	backend.revokeAll()

	second := buildClient(t, backend, path)
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("rehydration with stale access token failed: %v", err)
	}
	if second.Status() != StatusAuthenticated {
		t.Fatalf("status = %v", second.Status())
	}
	if backend.refreshCalls.Load() != 1 {
		t.Fatalf("refresh calls = %d, want 1", backend.refreshCalls.Load())
	}
}

func TestInitializeClearsUnrecoverableSession(t *testing.T) {
	backend := newFakeBackend()
	path := filepath.Join(t.TempDir(), "creds.json")
	ctx := context.Background()

	first := buildClient(t, backend, path)
	if err := first.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	// Both tokens die: the rehydration must fail, clear the persisted pair,
	// and land on Unauthenticated.
	backend.revokeAll()
	backend.revokeRefresh()

	second := buildClient(t, backend, path)
	if err := second.Initialize(ctx); err == nil {
		t.Fatal("expected rehydration failure")
	}
	if second.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v", second.Status())
	}

	// A third start finds nothing persisted.
	third := buildClient(t, backend, path)
	if err := third.Initialize(ctx); err != nil {
		t.Fatalf("start after cleared session: %v", err)
	}
	if third.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v", third.Status())
	}
}

func TestSessionExpiredHandlerFires(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	var expired atomic.Int64
	client, err := New().
		WithBaseURL(server.URL).
		WithTokenStorage(session.NewFileStorage(filepath.Join(t.TempDir(), "creds.json"))).
		WithSessionExpiredHandler(func() { expired.Add(1) }).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	backend.revokeAll()
	backend.revokeRefresh()

	if _, err := client.API().Students().List(ctx, api.ListParams{}); err == nil {
		t.Fatal("expected failure with dead tokens")
	}
	if expired.Load() != 1 {
		t.Fatalf("expired handler fired %d times, want 1", expired.Load())
	}
	if client.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v", client.Status())
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	client := buildClient(t, backend, filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if client.Status() != StatusUnauthenticated {
		t.Fatalf("status = %v", client.Status())
	}
	if backend.logoutCalls.Load() != 1 {
		t.Fatalf("backend logout calls = %d", backend.logoutCalls.Load())
	}

	// Logging out of an already-cleared session succeeds and does not phone
	// the backend again.
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if backend.logoutCalls.Load() != 1 {
		t.Fatalf("backend logout calls after second logout = %d", backend.logoutCalls.Load())
	}
}

func TestResourceCallsRideAuthorizedTransport(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	page, err := client.API().Students().List(ctx, api.ListParams{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Count != 1 || page.Results[0].FirstName != "Luis" {
		t.Fatalf("page = %+v", page)
	}
}

func TestUpdateProfileRequiresAuthentication(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.UpdateProfile(ctx, api.ProfileInput{FirstName: "X"}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestMetricsSnapshotCountsLifecycle(t *testing.T) {
	client := buildClient(t, newFakeBackend(), filepath.Join(t.TempDir(), "creds.json"))
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "wrong"}); err == nil {
		t.Fatal("expected rejection")
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}
	if err := client.Logout(ctx); err != nil {
		t.Fatal(err)
	}

	snap := client.MetricsSnapshot()
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("login success = %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("login failure = %d", snap.Counters[MetricLoginFailure])
	}
	if snap.Counters[MetricLogout] != 1 {
		t.Fatalf("logout = %d", snap.Counters[MetricLogout])
	}
}

func TestEventStream(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	sink := NewChannelSink(16)
	client, err := New().
		WithBaseURL(server.URL).
		WithTokenStorage(session.NewFileStorage(filepath.Join(t.TempDir(), "creds.json"))).
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Login(ctx, Credentials{Username: "admin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}
	client.Close()

	var types []string
	for len(sink.Events()) > 0 {
		e := <-sink.Events()
		types = append(types, e.EventType)
	}
	found := false
	for _, et := range types {
		if et == "login" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no login event in %v", types)
	}
}
