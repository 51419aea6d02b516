package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAToken is returned when the bearer credential does not parse as a
// JWT at all. That is not a fault: the contract treats the token as opaque.
var ErrNotAToken = errors.New("bearer credential is not a decodable token")

// TokenInfo carries the registered claims recovered from an UNVERIFIED
// token decode. Display only; never an access decision input.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the decoded expiry lies in the past. Zero expiry
// (claim absent) reports false.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// Inspect decodes the token's registered claims without any signature or
// claim validation.
func Inspect(raw string) (TokenInfo, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrNotAToken, err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
