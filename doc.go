// Package goEntitle provides the client-side session and entitlement
// synchronization core for a premium-content app: a persisted bearer-token
// session, an authoritative entitlement poll with safe-downgrade and
// out-of-order-completion guards, a pure navigation gate, and a transient
// auto-expiring notice timeline.
//
// The package is designed for a single app process: Engine methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build], and every timer-owning component is cancelled by
// [Engine.Close] (no leaked tickers or goroutines).
//
// # Architecture boundaries
//
// goEntitle is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (SessionState, Route, MetricsSnapshot, Event, etc.).
// Persistence lives in the session sub-package, remote calls in api, and
// decode-only token inspection in jwt. Screen rendering and the navigation
// shell are external collaborators: they read [Engine.Route],
// [Engine.ActiveNotice], and the event stream, and never reach past the
// Engine.
//
// # What this package must NOT do
//
//   - Validate the bearer token; it is an opaque credential (jwt.Inspect is
//     decode-only, for display).
//   - Grant premium from anything but an authoritative remote read. A
//     payment submission only opens the pending-review window.
//   - Let a transport failure downgrade a premium session.
package goEntitle
