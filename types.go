package aulasdk

import (
	"io"

	"github.com/Juan-JM/aulasdk/api"
	"github.com/Juan-JM/aulasdk/internal/events"
	internalmetrics "github.com/Juan-JM/aulasdk/internal/metrics"
	"github.com/Juan-JM/aulasdk/session"
)

// User is the authenticated principal held by the session store.
type User = session.User

// Status is the session lifecycle state.
type Status = session.Status

// Session status values.
const (
	StatusUninitialized   = session.StatusUninitialized
	StatusAuthenticating  = session.StatusAuthenticating
	StatusAuthenticated   = session.StatusAuthenticated
	StatusUnauthenticated = session.StatusUnauthenticated
)

// Credentials is the login payload.
type Credentials = api.Credentials

// APIError is a backend-rejected request with status and field detail.
type APIError = api.Error

// Event is a session lifecycle occurrence delivered to an [EventSink].
type Event = events.Event

// EventSink receives session lifecycle events from the client's dispatcher.
type EventSink = events.Sink

// NoOpSink is an [EventSink] that silently discards all events.
type NoOpSink = events.NoOpSink

// ChannelSink is a buffered channel-based [EventSink].
type ChannelSink = events.ChannelSink

// JSONWriterSink is an [EventSink] that writes JSON-encoded events to an
// io.Writer.
type JSONWriterSink = events.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return events.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return events.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter or histogram bucket.
type MetricID = internalmetrics.MetricID

// Metric identifiers.
const (
	MetricLoginSuccess      = internalmetrics.MetricLoginSuccess
	MetricLoginFailure      = internalmetrics.MetricLoginFailure
	MetricLogout            = internalmetrics.MetricLogout
	MetricRefreshSuccess    = internalmetrics.MetricRefreshSuccess
	MetricRefreshFailure    = internalmetrics.MetricRefreshFailure
	MetricRefreshCoalesced  = internalmetrics.MetricRefreshCoalesced
	MetricRequestRetried    = internalmetrics.MetricRequestRetried
	MetricSessionRehydrated = internalmetrics.MetricSessionRehydrated
	MetricSessionCleared    = internalmetrics.MetricSessionCleared
	MetricRequestLatency    = internalmetrics.MetricRequestLatency
)

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot
