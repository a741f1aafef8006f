// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"coachly/config"
	"coachly/internal/domain/service"
	"coachly/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the documented work factor used when the
// configuration does not set one. It matches the cost the stored
// credentials were produced with, so existing hashes keep verifying.
const DefaultBcryptCost = 12

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the hasher from configuration (auth.bcryptCost).
// A missing, zero or out-of-range cost falls back to DefaultBcryptCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg != nil && cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh random salt per call, so equal inputs yield
// different encodings. Errors here are engine faults (for example a
// password beyond bcrypt's 72-byte limit), never weak input.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "generate bcrypt hash")
	}

	return string(bytes), nil
}

// Verify compares a plaintext password with a stored bcrypt hash.
// bcrypt recomputes with the salt embedded in the stored encoding and
// compares digests in constant time. A mismatch is (false, nil); any other
// comparison error means the stored hash is malformed.
func (h *bcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrap(err, "compare bcrypt hash")
	}
}
