// Package internal contains helpers that are intentionally private to
// goEntitle.
//
// # Sub-packages
//
//   - backoff — failure-driven growth schedule for the entitlement poll
//
// # What this package must NOT do
//
//   - Export types that appear in the public goEntitle API.
//   - Be imported by any package outside the goEntitle module.
package internal
