package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/token"
	"github.com/fintrack/fintrack/internal/uid"
)

func testTokenConfig() token.Config {
	return token.Config{
		Secret:     []byte("test-signing-secret"),
		Issuer:     "FinTrack",
		Audience:   "FinTrack",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func testHasher() *credential.Hasher {
	return credential.NewHasher(credential.Params{
		Time: 1, MemoryKiB: 8 * 1024, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}, 8)
}

func registerTestUser(t *testing.T, repo identity.Repository) identity.User {
	t.Helper()
	ids := identity.NewService(repo, testHasher())
	user, err := ids.Register(context.Background(), identity.RegisterInput{
		Email:    "a@example.com",
		Username: "alice",
		Password: "SecurePass123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func issueFor(t *testing.T, tokens *token.Service, user identity.User) token.Pair {
	t.Helper()
	pair, err := tokens.Issue(token.Identity{Subject: user.ID.String(), Email: user.Email, Username: user.Username})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return pair
}

func TestResolveSuccess(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := registerTestUser(t, repo)
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	pair := issueFor(t, tokens, user)

	resolved, err := resolver.Resolve(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved id = %v, want %v", resolved.ID, user.ID)
	}
}

func TestResolveRejectsRefreshToken(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := registerTestUser(t, repo)
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	pair := issueFor(t, tokens, user)

	_, err := resolver.Resolve(context.Background(), pair.RefreshToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
	if !errors.Is(err, token.ErrWrongKind) {
		t.Fatalf("error = %v, want underlying token.ErrWrongKind", err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := registerTestUser(t, repo)

	issued := time.Now()
	tokens := token.NewService(testTokenConfig(), token.WithClock(func() time.Time { return issued }))
	pair := issueFor(t, tokens, user)

	later := token.NewService(testTokenConfig(), token.WithClock(func() time.Time { return issued.Add(31 * time.Minute) }))
	resolver := NewResolver(later, repo)

	_, err := resolver.Resolve(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrInvalidToken) || !errors.Is(err, token.ErrExpired) {
		t.Fatalf("error = %v, want ErrInvalidToken wrapping token.ErrExpired", err)
	}
}

func TestResolveUnknownSubject(t *testing.T) {
	repo := identity.NewMemoryRepository()
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	// Token for a user that was never stored.
	pair, err := tokens.Issue(token.Identity{Subject: uid.New().String()})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), pair.AccessToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveMalformedSubject(t *testing.T) {
	repo := identity.NewMemoryRepository()
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	pair, err := tokens.Issue(token.Identity{Subject: "not-a-uuid"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), pair.AccessToken); !errors.Is(err, ErrMalformedSubject) {
		t.Fatalf("error = %v, want ErrMalformedSubject", err)
	}
}

func TestResolveInactiveUser(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := registerTestUser(t, repo)
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	pair := issueFor(t, tokens, user)

	if err := repo.SetActive(context.Background(), user.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), pair.AccessToken); !errors.Is(err, ErrInactive) {
		t.Fatalf("error = %v, want ErrInactive", err)
	}
}

// failingRepo simulates an unavailable identity store.
type failingRepo struct {
	identity.Repository
	err error
}

func (r failingRepo) FindByID(context.Context, uid.UID) (identity.User, error) {
	return identity.User{}, r.err
}

func TestResolveLookupFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := failingRepo{Repository: identity.NewMemoryRepository(), err: storeErr}
	tokens := token.NewService(testTokenConfig())
	resolver := NewResolver(tokens, repo)

	pair, err := tokens.Issue(token.Identity{Subject: uid.New().String()})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("error = %v, want ErrLookupFailed", err)
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want it to wrap the store error", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Fatal("store outage must not be reported as an authentication failure")
	}
}
