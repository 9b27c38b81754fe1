package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/uid"
)

const defaultCurrency = "ETB"

var (
	// ErrInvalidCredentials is deliberately vague so responses cannot be
	// used to enumerate registered emails or usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked indicates the account exists but is deactivated.
	ErrAccountLocked = errors.New("account is inactive")
	// ErrMissingFields indicates required registration fields were empty.
	ErrMissingFields = errors.New("email, username and password are required")
)

// Service manages the account lifecycle: registration, credential
// verification and password changes.
type Service struct {
	repo   Repository
	hasher *credential.Hasher
}

// NewService creates a new identity service.
func NewService(repo Repository, hasher *credential.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Register creates a new active user with a hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if email == "" || username == "" || input.Password == "" {
		return User{}, ErrMissingFields
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return User{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now().UTC()
	user := User{
		ID:           uid.New(),
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PhoneNumber:  normalizePhone(input.PhoneNumber),
		Currency:     currency,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a password against the stored credential for
// the user matching the email-or-username identifier. Lookup misses and
// wrong passwords produce the same error; an inactive account is
// reported distinctly so the UI can message it.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (User, error) {
	user, err := s.repo.FindByIdentifier(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return User{}, ErrAccountLocked
	}

	return user, nil
}

// ChangePassword verifies the current password and replaces the stored
// hash with a freshly salted one.
func (s *Service) ChangePassword(ctx context.Context, id uid.UID, current, next string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// Get loads a user by canonical identifier.
func (s *Service) Get(ctx context.Context, id uid.UID) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
