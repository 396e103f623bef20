package auth

import (
	"context"
	"errors"
	"time"

	"github.com/edukit/rollbook/internal/common"
	"github.com/edukit/rollbook/internal/server/models"
)

// UserSource is the identity lookup the authenticator depends on.
// The users repository satisfies it.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves "who is making this request" by decoding a
// session token and looking up the subject in the identity store.
// Sessions are stateless: every call performs exactly one store read and
// nothing is cached.
type Authenticator struct {
	codec *TokenCodec
	users UserSource
}

func NewAuthenticator(codec *TokenCodec, users UserSource) *Authenticator {
	return &Authenticator{codec: codec, users: users}
}

// Authenticate decodes tokenString and returns the matching identity.
// A token whose subject no longer exists fails with common.ErrInvalidToken
// rather than yielding a nil identity; lookups are exact and
// case-sensitive on the username.
func (a *Authenticator) Authenticate(ctx context.Context, tokenString string, now time.Time) (*models.User, error) {
	subject, err := a.codec.Decode(tokenString, now)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrInternal
	}

	return user, nil
}
