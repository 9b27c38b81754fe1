package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/credential"
)

const (
	defaultAppName        = "FinTrack"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultIssuer         = "FinTrack"
	defaultAudience       = "FinTrack"
	defaultAccessTTL      = 30 * time.Minute
	defaultRefreshTTL     = 7 * 24 * time.Hour
	defaultPasswordMinLen = 8
)

// Config captures application runtime configuration loaded from
// environment variables. It is built once at startup and treated as
// immutable afterwards; components receive the pieces they need at
// construction time.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	// Token signing.
	SecretKey     string
	TokenIssuer   string
	TokenAudience string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Password hashing.
	PasswordMinLength int
	HashParams        credential.Params
}

// Load reads configuration values from the environment and populates a
// Config instance. Missing or malformed security settings are startup
// failures, never per-request ones.
func Load() (Config, error) {
	cfg := Config{
		AppName:           getEnv("APP_NAME", defaultAppName),
		AppEnv:            getEnv("APP_ENV", defaultAppEnv),
		Port:              getEnv("PORT", defaultPort),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ShutdownPeriod:    defaultShutdownDelay,
		IdempotencyTTL:    defaultIdempotencyTTL,
		SecretKey:         os.Getenv("SECRET_KEY"),
		TokenIssuer:       getEnv("TOKEN_ISSUER", defaultIssuer),
		TokenAudience:     getEnv("TOKEN_AUDIENCE", defaultAudience),
		AccessTTL:         defaultAccessTTL,
		RefreshTTL:        defaultRefreshTTL,
		PasswordMinLength: defaultPasswordMinLen,
		HashParams:        credential.DefaultParams(),
	}

	if err := overrideDuration(&cfg.ShutdownPeriod, "SHUTDOWN_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if err := overrideDuration(&cfg.IdempotencyTTL, "IDEMPOTENCY_TTL"); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", v)
		}
		cfg.AccessTTL = time.Duration(minutes) * time.Minute
	}
	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRE_DAYS: %q", v)
		}
		cfg.RefreshTTL = time.Duration(days) * 24 * time.Hour
	}

	if v := os.Getenv("PASSWORD_MIN_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid PASSWORD_MIN_LENGTH: %q", v)
		}
		cfg.PasswordMinLength = n
	}
	if err := overrideUint32(&cfg.HashParams.Time, "ARGON2_TIME_COST"); err != nil {
		return Config{}, err
	}
	if err := overrideUint32(&cfg.HashParams.MemoryKiB, "ARGON2_MEMORY_KIB"); err != nil {
		return Config{}, err
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY must be set")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment,
// where the in-memory store may stand in for Postgres and Redis.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func overrideDuration(dst *time.Duration, envVar string) error {
	if v := os.Getenv(envVar + "_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s_SECONDS: %w", envVar, err)
		}
		*dst = time.Duration(seconds) * time.Second
		return nil
	}
	if v := os.Getenv(envVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envVar, err)
		}
		*dst = d
	}
	return nil
}

func overrideUint32(dst *uint32, envVar string) error {
	v := os.Getenv(envVar)
	if v == "" {
		return nil
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil || u == 0 {
		return fmt.Errorf("invalid %s: %q", envVar, v)
	}
	*dst = uint32(u)
	return nil
}
