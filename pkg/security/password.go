package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatchedPassword means the hash is well-formed but was not produced from the given password.
	ErrMismatchedPassword = errors.New("password does not match")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

// PasswordHasher is the credential store: salted bcrypt hashes, verification only by comparison.
type PasswordHasher struct {
	cost int
	// dummy is compared against when no account matched, so both login
	// failure paths pay the same bcrypt cost.
	dummy []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("scm-career-bridge-dummy"), cost)
	if err != nil {
		dummy = nil
	}
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash returns a bcrypt hash with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify returns nil on match, ErrMismatchedPassword on mismatch, and any
// other error when the hash itself cannot be compared.
func (h *PasswordHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	return fmt.Errorf("compare password: %w", err)
}

// Burn performs a throwaway comparison.
func (h *PasswordHasher) Burn(password string) {
	if h.dummy == nil {
		return
	}
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
