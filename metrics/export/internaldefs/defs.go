package internaldefs

import (
	aulasdk "github.com/Juan-JM/aulasdk"
)

// CounterDef binds one counter's metric ID to its exported name.
type CounterDef struct {
	ID   aulasdk.MetricID
	Name string
	Help string
}

// HistogramDef binds one histogram's metric ID to its exported name.
type HistogramDef struct {
	ID   aulasdk.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter, in stable order.
var CounterDefs = []CounterDef{
	{ID: aulasdk.MetricLoginSuccess, Name: "aula_login_success_total", Help: "Successful login attempts."},
	{ID: aulasdk.MetricLoginFailure, Name: "aula_login_failure_total", Help: "Failed login attempts."},
	{ID: aulasdk.MetricLogout, Name: "aula_logout_total", Help: "Logout operations."},
	{ID: aulasdk.MetricRefreshSuccess, Name: "aula_refresh_success_total", Help: "Successful access-token refreshes."},
	{ID: aulasdk.MetricRefreshFailure, Name: "aula_refresh_failure_total", Help: "Failed access-token refreshes."},
	{ID: aulasdk.MetricRefreshCoalesced, Name: "aula_refresh_coalesced_total", Help: "Refresh attempts that joined an in-flight refresh."},
	{ID: aulasdk.MetricRequestRetried, Name: "aula_request_retried_total", Help: "Requests replayed after a token refresh."},
	{ID: aulasdk.MetricSessionRehydrated, Name: "aula_session_rehydrated_total", Help: "Sessions restored from persisted tokens at startup."},
	{ID: aulasdk.MetricSessionCleared, Name: "aula_session_cleared_total", Help: "Sessions cleared by unrecoverable authorization failures."},
}

// HistogramDefs lists every exported histogram, in stable order.
var HistogramDefs = []HistogramDef{
	{ID: aulasdk.MetricRequestLatency, Name: "aula_request_latency_seconds", Help: "Authorized request latency histogram."},
}

// HistogramBounds are the upper bucket bounds in Prometheus label form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds in OTel instrument-name form.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
