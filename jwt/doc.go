// Package jwt provides decode-only inspection of the opaque bearer token
// for diagnostic and display purposes.
//
// The client never validates tokens — the backend is the sole authority —
// so this package parses registered claims without checking signatures or
// expiry and must never be used to make an access decision.
package jwt
