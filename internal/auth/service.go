// Package auth composes the identity, credential and token components
// into the login, refresh and session-resolution flows exposed over HTTP.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/token"
	"github.com/fintrack/fintrack/internal/uid"
)

// Service handles login and token renewal.
type Service struct {
	ids    *identity.Service
	tokens *token.Service
}

// NewService builds the auth service on top of identity verification
// and token issuance.
func NewService(ids *identity.Service, tokens *token.Service) *Service {
	return &Service{ids: ids, tokens: tokens}
}

// Login verifies credentials and mints an access/refresh pair.
func (s *Service) Login(ctx context.Context, identifier, password string) (identity.User, token.Pair, error) {
	user, err := s.ids.Authenticate(ctx, identifier, password)
	if err != nil {
		return identity.User{}, token.Pair{}, err
	}

	pair, err := s.tokens.Issue(token.Identity{
		Subject:  user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return identity.User{}, token.Pair{}, fmt.Errorf("issue tokens: %w", err)
	}

	return user, pair, nil
}

// Refresh verifies a refresh token and issues a new access token. The
// user record is re-loaded so a deactivated account cannot keep minting
// access tokens from an old refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uid.Parse(claims.Subject)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrMalformedSubject, err)
	}

	user, err := s.ids.Get(ctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", time.Time{}, ErrNotFound
		}
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if !user.IsActive {
		return "", time.Time{}, ErrInactive
	}

	pair, err := s.tokens.Issue(token.Identity{
		Subject:  user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue access token: %w", err)
	}

	return pair.AccessToken, pair.AccessExpiresAt, nil
}
