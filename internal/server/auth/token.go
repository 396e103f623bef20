package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edukit/rollbook/internal/common"
)

// TokenCodec issues and decodes signed, time-bound session tokens.
// Tokens carry {sub, exp} claims in the standard three-segment JWS compact
// form, signed with a symmetric key. The codec holds no mutable state
// after construction and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenCodec creates a codec for the given HMAC algorithm name
// ("HS256", "HS384" or "HS512"). The secret must be non-empty; there is
// deliberately no fallback value.
func NewTokenCodec(secret []byte, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token codec: secret key is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token codec: ttl must be positive, got %v", ttl)
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token codec: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token codec: algorithm %q is not an HMAC method", algorithm)
	}
	return &TokenCodec{secret: secret, method: method, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue builds and signs a token asserting subject until now+TTL.
// The expiry is embedded in the token and is never extended afterwards.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

// Decode verifies tokenString against the configured key and algorithm and
// returns the subject claim. Signature mismatch, a different signing
// algorithm, malformed structure, expiry at or before now, and an empty
// subject all fail with common.ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
