package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edukit/rollbook/internal/common"
)

func newCodec(t *testing.T, secret string, ttl time.Duration) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec([]byte(secret), "HS256", ttl)
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return c
}

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	t0 := time.Now()

	tok, err := c.Issue("alice", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := c.Decode(tok, t0)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "alice")
	}
}

func TestIssue_EmbedsExpiryAtNowPlusTTL(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	t0 := time.Unix(1_700_000_000, 0)

	tok, err := c.Issue("alice", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload decode error: %v", err)
	}
	var claims struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	if claims.Sub != "alice" {
		t.Fatalf("sub = %q, want alice", claims.Sub)
	}
	if want := t0.Add(time.Hour).Unix(); claims.Exp != want {
		t.Fatalf("exp = %d, want %d", claims.Exp, want)
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	t0 := time.Now()

	tok, err := c.Issue("alice", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := c.Decode(tok, t0.Add(time.Hour+time.Second)); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken after expiry, got %v", err)
	}

	// Still valid just before expiry.
	if _, err := c.Decode(tok, t0.Add(time.Hour-time.Second)); err != nil {
		t.Fatalf("token should still be valid before expiry: %v", err)
	}
}

func TestDecode_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	t0 := time.Now()

	tok, err := c.Issue("alice", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := c.Decode(tampered, t0); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	tok, err := newCodec(t, "right-secret", time.Hour).Issue("alice", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := newCodec(t, "wrong-secret", time.Hour).Decode(tok, t0); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestDecode_RejectsDifferentAlgorithm(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	c := newCodec(t, string(secret), time.Hour)
	t0 := time.Now()

	// Same key, but signed with HS512 instead of the configured HS256.
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("signing error: %v", err)
	}

	if _, err := c.Decode(tok, t0); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for foreign algorithm, got %v", err)
	}
}

func TestDecode_EmptySubject(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	t0 := time.Now()

	tok, err := c.Issue("", t0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := c.Decode(tok, t0); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for empty subject, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "k", time.Hour)

	if _, err := c.Decode("not.a.jwt", time.Now()); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestNewTokenCodec_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenCodec(nil, "HS256", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenCodec([]byte("k"), "RS256", time.Hour); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
	if _, err := NewTokenCodec([]byte("k"), "bogus", time.Hour); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
	if _, err := NewTokenCodec([]byte("k"), "HS256", 0); err == nil {
		t.Fatalf("expected error for non-positive ttl")
	}
	if _, err := NewTokenCodec([]byte("k"), "HS384", time.Minute); err != nil {
		t.Fatalf("HS384 should be accepted: %v", err)
	}
}
