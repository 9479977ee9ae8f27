// Package prometheus renders aulasdk metrics in Prometheus text exposition
// format.
//
// [NewExporter] accepts an [aulasdk.Client] and exposes an http.Handler
// that renders all counters and histograms. Counter names are prefixed
// aula_*_total; the single histogram is aula_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the
//     Handler.
//   - Mutate client state.
package prometheus
