package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when the raw string is not a decodable JWT.
var ErrMalformedToken = errors.New("malformed access token")

// AccessClaims is the subset of the backend's access-token payload the
// console cares about. Zero time values mean the claim was absent.
type AccessClaims struct {
	TokenType string
	UserID    int64
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type rawClaims struct {
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	jwtlib.RegisteredClaims
}

// ParseUnverified decodes the token payload without checking the signature.
func ParseUnverified(raw string) (*AccessClaims, error) {
	var claims rawClaims
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	out := &AccessClaims{
		TokenType: claims.TokenType,
		UserID:    claims.UserID,
		JTI:       claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// ExpiresWithin reports whether the token expires inside the given window
// from now. Tokens without an expiry claim never report as expiring; the
// 401-retry path covers them.
func (c *AccessClaims) ExpiresWithin(window time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(c.ExpiresAt) <= window
}

// Expired reports whether the expiry claim is in the past.
func (c *AccessClaims) Expired() bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}
