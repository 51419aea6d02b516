// Package prometheus provides Prometheus collectors for goEntitle metrics.
//
// [NewPrometheusExporter] accepts a [goEntitle.Engine] and exposes an
// [http.Handler] that renders all goEntitle counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// goentitle_*_total; the single histogram is goentitle_sync_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
