// Package metrics is the in-process counter and histogram store for the
// client. Counters are lock-free atomics indexed by MetricID; the request
// latency histogram uses fixed bounds so snapshots never allocate per
// sample. Exported surfaces (Prometheus/OTel) read point-in-time snapshots,
// never the live arrays.
package metrics
