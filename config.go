package aulasdk

import (
	"errors"
	"net/url"
	"time"
)

// Config defines the client's tunable behavior. Configure before Build;
// treat as immutable afterwards.
type Config struct {
	Backend BackendConfig
	Session SessionConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

// BackendConfig locates the remote REST backend.
type BackendConfig struct {
	// BaseURL is the backend root, e.g. "https://aula.example.edu".
	BaseURL string
	// Timeout bounds each request end to end, replay included. A timeout
	// surfaces to callers as a network error.
	Timeout time.Duration
	// UserAgent is sent on every request.
	UserAgent string
}

// SessionConfig controls token persistence and refresh behavior.
type SessionConfig struct {
	// StoragePath overrides the credential file location. Ignored when a
	// TokenStorage or Redis client is supplied through the builder.
	StoragePath string
	// RedisPrefix namespaces the token hash when Redis storage is used.
	RedisPrefix string
	// ProactiveRefreshWindow refreshes the access token ahead of its expiry
	// claim instead of waiting for a 401. Zero disables the check.
	ProactiveRefreshWindow time.Duration
}

// EventsConfig controls the lifecycle event dispatcher.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Timeout:   30 * time.Second,
			UserAgent: "aulasdk/1",
		},
		Session: SessionConfig{
			RedisPrefix:            "aula",
			ProactiveRefreshWindow: 0,
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.Backend.BaseURL == "" {
		return errors.New("config: backend base URL required")
	}
	parsed, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("config: backend base URL needs scheme and host")
	}
	if cfg.Backend.Timeout < 0 {
		return errors.New("config: negative backend timeout")
	}
	if cfg.Session.ProactiveRefreshWindow < 0 {
		return errors.New("config: negative proactive refresh window")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone exists so Build can keep
	// mutating builders from leaking into a running client.
	return cfg
}
