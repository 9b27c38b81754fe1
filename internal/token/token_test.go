package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

func testConfig() Config {
	return Config{
		Secret:     []byte("test-signing-secret"),
		Issuer:     "FinTrack",
		Audience:   "FinTrack",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func testIdentity() Identity {
	return Identity{
		Subject:  uid.New().String(),
		Email:    "a@example.com",
		Username: "alice",
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testConfig())
	id := testIdentity()

	pair, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(pair.AccessToken, ".") != 2 {
		t.Fatalf("access token is not a three-segment compact token: %q", pair.AccessToken)
	}

	claims, err := svc.Verify(pair.AccessToken, KindAccess)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.Subject != id.Subject {
		t.Errorf("subject = %q, want %q", claims.Subject, id.Subject)
	}
	if claims.Email != id.Email || claims.Username != id.Username {
		t.Errorf("display claims = %q/%q, want %q/%q", claims.Email, claims.Username, id.Email, id.Username)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("exp is not after iat")
	}

	refreshClaims, err := svc.Verify(pair.RefreshToken, KindRefresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refreshClaims.Email != "" || refreshClaims.Username != "" {
		t.Error("refresh token carries display claims")
	}
	if refreshClaims.Subject != id.Subject {
		t.Errorf("refresh subject = %q, want %q", refreshClaims.Subject, id.Subject)
	}
}

func TestVerifyWrongKind(t *testing.T) {
	svc := NewService(testConfig())

	pair, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(pair.RefreshToken, KindAccess); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("refresh-as-access error = %v, want ErrWrongKind", err)
	}
	if _, err := svc.Verify(pair.AccessToken, KindRefresh); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("access-as-refresh error = %v, want ErrWrongKind", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	cfg := testConfig()
	issued := time.Now()

	svc := NewService(cfg, WithClock(func() time.Time { return issued }))
	pair, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Valid right away.
	if _, err := svc.Verify(pair.AccessToken, KindAccess); err != nil {
		t.Fatalf("verify immediately after issuance: %v", err)
	}

	// 31 minutes later the 30-minute access token is expired.
	later := NewService(cfg, WithClock(func() time.Time { return issued.Add(31 * time.Minute) }))
	if _, err := later.Verify(pair.AccessToken, KindAccess); !errors.Is(err, ErrExpired) {
		t.Fatalf("verify after expiry error = %v, want ErrExpired", err)
	}

	// The refresh token is still inside its days-scale lifetime.
	if _, err := later.Verify(pair.RefreshToken, KindRefresh); err != nil {
		t.Fatalf("verify refresh after 31m: %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := NewService(testConfig())

	pair, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewService(Config{
		Secret:     []byte("a-different-secret"),
		Issuer:     "FinTrack",
		Audience:   "FinTrack",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	if _, err := other.Verify(pair.AccessToken, KindAccess); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("cross-secret verify error = %v, want ErrSignatureInvalid", err)
	}
}

func TestVerifyIssuerAndAudience(t *testing.T) {
	cfg := testConfig()
	svc := NewService(cfg)

	pair, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "SomeoneElse"
	if _, err := NewService(wrongIssuer).Verify(pair.AccessToken, KindAccess); !errors.Is(err, ErrIssuerMismatch) {
		t.Fatalf("issuer mismatch error = %v, want ErrIssuerMismatch", err)
	}

	wrongAudience := cfg
	wrongAudience.Audience = "SomeoneElse"
	if _, err := NewService(wrongAudience).Verify(pair.AccessToken, KindAccess); !errors.Is(err, ErrAudienceMismatch) {
		t.Fatalf("audience mismatch error = %v, want ErrAudienceMismatch", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService(testConfig())

	for _, text := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(text, KindAccess); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformed", text, err)
		}
	}
}
