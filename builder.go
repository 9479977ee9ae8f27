package aulasdk

import (
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Juan-JM/aulasdk/api"
	"github.com/Juan-JM/aulasdk/internal/events"
	internalmetrics "github.com/Juan-JM/aulasdk/internal/metrics"
	"github.com/Juan-JM/aulasdk/session"
	"github.com/Juan-JM/aulasdk/transport"
)

// Builder assembles a [Client]. Construction is allocation-only; no I/O
// happens until [Client.Initialize].
type Builder struct {
	config Config

	redis     *redis.Client
	storage   session.TokenStorage
	base      http.RoundTripper
	sink      EventSink
	onExpired func()

	built bool
}

// New creates a builder with defaults applied.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend root URL.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Backend.BaseURL = baseURL
	return b
}

// WithTimeout bounds each request end to end.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	b.config.Backend.Timeout = d
	return b
}

// WithHTTPTransport replaces the base round tripper under the authorized
// transport. Mainly for tests and custom TLS setups.
func (b *Builder) WithHTTPTransport(rt http.RoundTripper) *Builder {
	b.base = rt
	return b
}

// WithTokenStorage supplies a custom durable home for the token pair.
// Takes precedence over WithRedis and the default file storage.
func (b *Builder) WithTokenStorage(storage session.TokenStorage) *Builder {
	b.storage = storage
	return b
}

// WithRedis persists the token pair in Redis instead of the credential
// file, for server-hosted console deployments.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithEventSink enables the lifecycle event stream into sink.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.config.Events.Enabled = true
	b.sink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the request latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithProactiveRefresh refreshes the access token when it expires within
// the window, ahead of any 401.
func (b *Builder) WithProactiveRefresh(window time.Duration) *Builder {
	b.config.Session.ProactiveRefreshWindow = window
	return b
}

// WithSessionExpiredHandler registers the navigate-to-login callback,
// invoked after an unrecoverable authorization failure clears the session.
func (b *Builder) WithSessionExpiredHandler(handler func()) *Builder {
	b.onExpired = handler
	return b
}

// Build wires the session store, authorized transport, and resource
// services into a [Client]. A builder can only be used once.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	storage := b.storage
	if storage == nil && b.redis != nil {
		storage = session.NewRedisStorage(b.redis, b.config.Session.RedisPrefix)
	}
	if storage == nil {
		path := b.config.Session.StoragePath
		if path == "" {
			var err error
			path, err = session.DefaultFilePath()
			if err != nil {
				return nil, err
			}
		}
		storage = session.NewFileStorage(path)
	}

	store := session.NewStore(storage)
	meters := internalmetrics.New(internalmetrics.Config{
		Enabled:       b.config.Metrics.Enabled,
		EnableLatency: b.config.Metrics.EnableLatencyHistograms,
	})
	dispatcher := events.NewDispatcher(events.Config{
		Enabled:    b.config.Events.Enabled,
		BufferSize: b.config.Events.BufferSize,
		DropIfFull: b.config.Events.DropIfFull,
	}, b.sink)

	base := b.base
	if base == nil {
		base = http.DefaultTransport
	}

	// The bare client carries login and token refresh: those calls must
	// never recurse into the authorized transport.
	bareHTTP := &http.Client{Transport: base, Timeout: b.config.Backend.Timeout}
	bareAPI, err := api.NewClient(b.config.Backend.BaseURL, bareHTTP, b.config.Backend.UserAgent)
	if err != nil {
		return nil, err
	}

	client := &Client{
		cfg:       b.config,
		store:     store,
		bare:      bareAPI,
		metrics:   meters,
		events:    dispatcher,
		onExpired: b.onExpired,
	}

	authorized, err := transport.New(transport.Deps{
		Base:             base,
		AccessToken:      store.AccessToken,
		RefreshToken:     store.RefreshToken,
		StoreAccessToken: store.SetAccessToken,
		ClearSession:     store.Clear,
		Refresh:          bareAPI.Auth().RefreshAccess,
		OnSessionExpired: client.notifySessionExpired,
		ProactiveWindow:  b.config.Session.ProactiveRefreshWindow,
		Metrics:          meters,
		Events:           dispatcher,
	})
	if err != nil {
		return nil, err
	}

	authHTTP := &http.Client{Transport: authorized, Timeout: b.config.Backend.Timeout}
	authAPI, err := api.NewClient(b.config.Backend.BaseURL, authHTTP, b.config.Backend.UserAgent)
	if err != nil {
		return nil, err
	}
	client.api = authAPI

	b.built = true
	return client, nil
}
