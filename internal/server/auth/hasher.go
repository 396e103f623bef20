// Package auth implements the authentication core: password hashing and
// verification, issuing and decoding of signed session tokens, and
// resolving an authenticated identity from a token.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit. Longer plaintexts are rejected
// outright instead of truncated, and the same bound is applied during
// verification so the two sides can never disagree.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash when the plaintext exceeds
// bcrypt's 72-byte limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher performs one-way password hashing with bcrypt. Each Hash call
// embeds a fresh random salt, so hashing the same plaintext twice yields
// different credentials that both verify.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt credential for plaintext in bcrypt's encoded
// string form (salt included).
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored credential.
// A mismatch is a normal false result, never an error. Plaintexts over
// the 72-byte limit verify as false, mirroring the rejection in Hash.
func (h *Hasher) Verify(plaintext, credential string) bool {
	if len(plaintext) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
