package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/token"
	"github.com/fintrack/fintrack/internal/uid"
)

var (
	// ErrInvalidToken covers every token verification failure: bad
	// signature, expiry, wrong kind, issuer or audience mismatch.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrMalformedSubject means the token verified but its subject is
	// not a parseable identifier. Issuance never produces such a token,
	// but the resolver handles it rather than trusting that.
	ErrMalformedSubject = errors.New("malformed token subject")
	// ErrNotFound means the subject no longer maps to a user record.
	ErrNotFound = errors.New("session user not found")
	// ErrInactive means the user exists but the account is deactivated.
	ErrInactive = errors.New("session user is inactive")
	// ErrLookupFailed means the identity store was unavailable; safe to
	// retry, not an authentication failure.
	ErrLookupFailed = errors.New("identity lookup failed")
)

// Resolver turns a bearer token into the authenticated user for one
// request: verify the access token, decode its subject, load the user,
// require the account to be active. At most one store lookup per call.
type Resolver struct {
	tokens *token.Service
	repo   identity.Repository
}

// NewResolver builds a session resolver.
func NewResolver(tokens *token.Service, repo identity.Repository) *Resolver {
	return &Resolver{tokens: tokens, repo: repo}
}

// Resolve authenticates a bearer token. The returned error wraps both
// the stage sentinel and the underlying cause, so callers can test for
// either (e.g. token.ErrWrongKind underneath ErrInvalidToken).
func (r *Resolver) Resolve(ctx context.Context, bearer string) (identity.User, error) {
	claims, err := r.tokens.Verify(bearer, token.KindAccess)
	if err != nil {
		return identity.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uid.Parse(claims.Subject)
	if err != nil {
		return identity.User{}, fmt.Errorf("%w: %w", ErrMalformedSubject, err)
	}

	user, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, ErrNotFound
		}
		return identity.User{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	if !user.IsActive {
		return identity.User{}, ErrInactive
	}

	return user, nil
}
