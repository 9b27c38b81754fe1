package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h", cfg.RefreshTTL)
	}
	if cfg.PasswordMinLength != 8 {
		t.Errorf("PasswordMinLength = %d, want 8", cfg.PasswordMinLength)
	}
	if cfg.TokenIssuer != "FinTrack" || cfg.TokenAudience != "FinTrack" {
		t.Errorf("issuer/audience = %q/%q", cfg.TokenIssuer, cfg.TokenAudience)
	}
	if cfg.HashParams.MemoryKiB != 64*1024 || cfg.HashParams.Time != 3 {
		t.Errorf("unexpected hash params: %+v", cfg.HashParams)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing SECRET_KEY")
	}
}

func TestLoadRequiresStoresOutsideDev(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL in production")
	}
}

func TestLoadTokenLifetimeOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 30*24*time.Hour {
		t.Errorf("RefreshTTL = %v, want 720h", cfg.RefreshTTL)
	}

	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed ACCESS_TOKEN_EXPIRE_MINUTES")
	}
}
