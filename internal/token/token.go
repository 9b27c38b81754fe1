// Package token issues and verifies the signed session tokens that
// prove identity between requests. Access and refresh tokens share the
// same issuer, audience and signing secret but differ in lifetime and
// in the type claim.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates access tokens from refresh tokens.
type Kind string

const (
	// KindAccess is the short-lived token presented on ordinary API calls.
	KindAccess Kind = "access"
	// KindRefresh is the long-lived token accepted only for renewal.
	KindRefresh Kind = "refresh"
)

var (
	ErrMalformed        = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrIssuerMismatch   = errors.New("token issuer mismatch")
	ErrAudienceMismatch = errors.New("token audience mismatch")
	ErrExpired          = errors.New("token has expired")
	ErrWrongKind        = errors.New("wrong token kind")
)

// Claims is the decoded payload of a signed token. Subject carries the
// canonical identifier in its textual form; Email and Username are
// denormalized onto access tokens so callers can display them without a
// second lookup.
type Claims struct {
	jwt.RegisteredClaims
	Type     Kind   `json:"type"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// Identity is the input to issuance: the subject's canonical id text
// plus the display fields copied onto the access token.
type Identity struct {
	Subject  string
	Email    string
	Username string
}

// Pair is the result of one issuance.
type Pair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// Config holds the immutable signing configuration.
type Config struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service signs and verifies tokens. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	cfg Config
	now func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source, used by tests to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a token service from the signing configuration.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints an access/refresh pair for the given identity. Issuance
// is a pure function of the claims, the clock and the configuration.
func (s *Service) Issue(id Identity) (Pair, error) {
	now := s.now().UTC()
	accessExp := now.Add(s.cfg.AccessTTL)

	access, err := s.sign(Claims{
		RegisteredClaims: s.registered(id.Subject, now, accessExp),
		Type:             KindAccess,
		Email:            id.Email,
		Username:         id.Username,
	})
	if err != nil {
		return Pair{}, err
	}

	refresh, err := s.sign(Claims{
		RegisteredClaims: s.registered(id.Subject, now, now.Add(s.cfg.RefreshTTL)),
		Type:             KindRefresh,
	})
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh, AccessExpiresAt: accessExp}, nil
}

// Verify checks signature, issuer, audience and expiry, then requires
// the type claim to match the expected kind. Each failure maps to a
// distinct sentinel so callers can tell an expired token from a refresh
// token presented where an access token belongs.
func (s *Service) Verify(tokenText string, expected Kind) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenText, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrIssuerMismatch
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrAudienceMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	if claims.Type != expected {
		return nil, ErrWrongKind
	}

	return claims, nil
}

func (s *Service) registered(subject string, iat, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		Audience:  jwt.ClaimStrings{s.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (s *Service) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}
