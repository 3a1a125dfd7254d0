// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bazaar/config"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	specialChars             = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
)

// forbiddenWords are substrings that make a password trivially guessable.
var forbiddenWords = []string{"password", "admin", "qwerty", "12345678"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher is the constructor for bcryptHasher with default settings.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost, minLength: defaultMinPasswordLength}
}

// NewBcryptHasherWithCost creates a hasher with an explicit bcrypt cost factor.
// Lower costs are useful in tests.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost, minLength: defaultMinPasswordLength}
}

// NewBcryptHasherFromConfig creates a hasher configured from the application config.
func NewBcryptHasherFromConfig(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	minLength := defaultMinPasswordLength
	if cfg.PasswordStrength != nil && cfg.PasswordStrength.MinLength > 0 {
		minLength = cfg.PasswordStrength.MinLength
	}

	return &bcryptHasher{cost: cost, minLength: minLength}
}

// Hash validates the password strength and then generates a salted bcrypt hash.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength enforces the password policy: minimum length,
// mixed case, numbers, special characters, and no trivially guessable words.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least 8 characters long")
	}
	if !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one lowercase letter")
	}
	if !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one uppercase letter")
	}
	if !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one number")
	}
	if !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one special character")
	}
	if h.containsForbiddenWords(password, forbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("password contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' })
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsAny(s, specialChars)
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lowered := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
