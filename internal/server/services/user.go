// Package services contains server-side business logic. This file implements
// UserService, the surface the transport layer calls for registration,
// login, and resolving the identity behind a session token.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edukit/rollbook/internal/common"
	"github.com/edukit/rollbook/internal/server/auth"
	"github.com/edukit/rollbook/internal/server/models"
	"github.com/edukit/rollbook/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: hash a password and create the user
// - Login: verify credentials and issue a session token
// - Authenticate: resolve the identity behind a bearer token
type UserService struct {
	users  users.Repository
	hasher *auth.Hasher
	codec  *auth.TokenCodec
	authn  *auth.Authenticator
}

// NewUserService constructs a UserService from the users repository and the
// authentication core components.
func NewUserService(repo users.Repository, hasher *auth.Hasher, codec *auth.TokenCodec) *UserService {
	return &UserService{
		users:  repo,
		hasher: hasher,
		codec:  codec,
		authn:  auth.NewAuthenticator(codec, repo),
	}
}

// Register creates a new user with the given username and password.
// A username that is already registered yields common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, common.ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}

	// The repository maps a unique-constraint race to ErrUsernameTaken as well.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		return nil, common.ErrInternal
	}

	return created, nil
}

// Login verifies the provided password against the stored credential and,
// on success, issues a session token. Unknown usernames and wrong
// passwords fail identically with common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Username, time.Now())
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Authenticate resolves the identity asserted by tokenString, reading the
// user store once per call.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	return s.authn.Authenticate(ctx, tokenString, time.Now())
}

// TokenTTL reports the configured session token lifetime.
func (s *UserService) TokenTTL() time.Duration {
	return s.codec.TTL()
}
