// Package session provides Redis-backed persistence for the client session
// snapshot: bearer token, connection flag, premium entitlement, and the
// onboarding marker.
//
// # Value encoding
//
// Values keep the wire strings the historical client wrote ("1" for
// onboarded, "oui" for connected, "true"/"false" for premium), so a store
// written by an old build reads back correctly. The legacy userToken key is
// read as a fallback and migrated to the canonical token key on load.
//
// # Architecture boundaries
//
// This package owns key naming, value encoding, and Redis round trips. It
// does NOT decide routes, interpret tokens, or talk to the remote API —
// those responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import goEntitle, api, or jwt (no upward imports).
//   - Derive or override the premium flag from anything but its stored value.
//   - Block on anything other than a single Redis round trip per operation
//     (Load is one MGET; SaveLogin is one pipeline).
package session
