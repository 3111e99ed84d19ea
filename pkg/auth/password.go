package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the default bcrypt work factor. Each increment roughly
// doubles hashing time, which lands directly on request latency, so the
// configurable range is capped well below bcrypt's own maximum.
const (
	DefaultCost = 10
	MaxCost     = 17
)

// Hasher hashes and verifies user passwords.
type Hasher interface {
	// Hash creates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether a plaintext password matches a hash.
	// A mismatch is not an error; only backend failures are.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given work factor.
// Cost is clamped to [bcrypt.MinCost, MaxCost]; zero selects DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > MaxCost {
		cost = MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash creates a bcrypt hash from a password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks if a password matches a bcrypt hash
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return true, nil
}

var _ Hasher = (*BcryptHasher)(nil)
