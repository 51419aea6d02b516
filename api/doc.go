// Package api is the HTTP client for the remote account backend: login,
// registration, the authoritative user/entitlement read, and the manual
// VIP payment request.
//
// # Response contract
//
// Auth endpoints answer 200 with a success flag and a message sentinel
// rather than an error status. The known sentinels ("invalid credentials",
// "user not found", "user already exists") are mapped to typed errors here;
// the Engine maps those to its own sentinels and localized notices.
//
// # What this package must NOT do
//
//   - Persist anything or touch the session store.
//   - Validate or interpret the bearer token beyond forwarding it.
//   - Decide navigation or entitlement transitions.
package api
