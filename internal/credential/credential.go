// Package credential hashes and verifies user passwords with Argon2id.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2Version = argon2.Version

// ErrWeakPassword is returned when a password fails the minimum-length policy.
var ErrWeakPassword = errors.New("password does not meet the minimum length requirement")

// Params controls Argon2id cost. MemoryKiB is in KiB as required by argon2.IDKey.
type Params struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams mirrors the deployment baseline: 3 iterations, 64 MiB,
// 4 lanes, 16-byte salt, 32-byte key.
func DefaultParams() Params {
	return Params{
		Time:        3,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher produces and checks self-describing password hashes. Cost
// parameters are fixed at construction so every credential in a
// deployment uses uniform work factors; parameters embedded in stored
// strings keep older hashes verifiable after a configuration change.
type Hasher struct {
	params    Params
	minLength int
}

// NewHasher builds a Hasher with the given cost parameters and minimum
// password length.
func NewHasher(params Params, minLength int) *Hasher {
	if minLength <= 0 {
		minLength = 8
	}
	return &Hasher{params: params, minLength: minLength}
}

// Hash derives an Argon2id digest over a fresh random salt and encodes
// it as $argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<digest>.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < h.minLength {
		return "", ErrWeakPassword
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version, h.params.MemoryKiB, h.params.Time, h.params.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether password matches the stored hash. The digest
// comparison is constant-time. A malformed or unsupported stored hash
// yields false rather than an error so callers treat it exactly like a
// wrong password.
func (h *Hasher) Verify(password, stored string) bool {
	params, salt, expected, ok := decode(stored)
	if !ok {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(key, expected) == 1
}

// decode parses an encoded hash into its cost parameters, salt and digest.
func decode(encoded string) (Params, []byte, []byte, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, false
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Params{}, nil, nil, false
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return Params{}, nil, nil, false
	}
	if mem == 0 || iter == 0 || par == 0 || par > 255 {
		return Params{}, nil, nil, false
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) < 8 || len(salt) > 64 {
		return Params{}, nil, nil, false
	}
	digest, err := b64.DecodeString(parts[5])
	if err != nil || len(digest) < 16 || len(digest) > 128 {
		return Params{}, nil, nil, false
	}

	params := Params{
		Time:        iter,
		MemoryKiB:   mem,
		Parallelism: uint8(par),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(digest)),
	}
	return params, salt, digest, true
}
