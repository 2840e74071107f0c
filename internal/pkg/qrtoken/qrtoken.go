// Package qrtoken implements the signed, short-lived check-in token
// protocol. Tokens are HS256 JWTs carrying the issuing business and the
// validity window, so they cannot be forged without the signing key.
// Issue and Validate share no mutable state beyond the key.
package qrtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Reason classifies why a token was rejected. The three reasons are
// distinguishable so callers can return tailored errors.
type Reason string

const (
	ReasonExpired       Reason = "expired"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonWrongBusiness Reason = "wrong_business"
)

type InvalidTokenError struct {
	Reason Reason
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid qr token: %s", e.Reason)
}

const businessIDClaim = "business_id"

type Codec struct {
	key []byte
	ttl time.Duration
}

// New creates a codec signing with the given key. ttl is the validity
// window measured from issuance.
func New(secret string, ttl time.Duration) *Codec {
	return &Codec{key: []byte(secret), ttl: ttl}
}

// TTL returns the configured validity window.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token scoped to businessID, valid from now until
// now + ttl.
func (c *Codec) Issue(businessID string, now time.Time) (string, error) {
	tok, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(c.ttl)).
		Claim(businessIDClaim, businessID).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build qr token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, c.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign qr token: %w", err)
	}

	return string(signed), nil
}

// Validate checks the signature, the validity window against now, and the
// business scope. Returns *InvalidTokenError on rejection.
func (c *Codec) Validate(raw string, expectedBusinessID string, now time.Time) error {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, c.key),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return &InvalidTokenError{Reason: ReasonExpired}
		}
		return &InvalidTokenError{Reason: ReasonInvalidFormat}
	}

	claim, ok := tok.Get(businessIDClaim)
	if !ok {
		return &InvalidTokenError{Reason: ReasonInvalidFormat}
	}
	businessID, ok := claim.(string)
	if !ok {
		return &InvalidTokenError{Reason: ReasonInvalidFormat}
	}
	if businessID != expectedBusinessID {
		return &InvalidTokenError{Reason: ReasonWrongBusiness}
	}

	return nil
}
