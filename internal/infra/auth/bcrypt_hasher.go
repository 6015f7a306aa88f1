// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"supermarket/config"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/service"
	"supermarket/internal/errors"
)

// bcrypt ignores everything past 72 bytes.
const bcryptMaxLength = 72

var forbiddenWords = []string{"password", "admin", "qwerty", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	strength := defaultStrength()
	if cfg.PasswordStrength != nil {
		strength = *cfg.PasswordStrength
	}

	return newBcryptHasher(cost, strength)
}

// NewBcryptHasherWithCost builds a hasher with the default strength policy.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, defaultStrength())
}

func newBcryptHasher(cost int, strength config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if strength.MaxLength <= 0 || strength.MaxLength > bcryptMaxLength {
		strength.MaxLength = bcryptMaxLength
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

func defaultStrength() config.PasswordStrengthConfig {
	return config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        bcryptMaxLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

// Hash validates the password and generates a salted hash from it using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks password against the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	s := h.strength

	switch {
	case len(password) < s.MinLength || strings.TrimSpace(password) == "":
		return weak(fmt.Sprintf("Password must be at least %d characters long.", max(s.MinLength, 1)))
	case len(password) > s.MaxLength:
		return weak(fmt.Sprintf("Password must be at most %d bytes long.", s.MaxLength))
	case s.RequireLowercase && !h.hasLowercase(password):
		return weak("Password must contain at least one lowercase letter.")
	case s.RequireUppercase && !h.hasUppercase(password):
		return weak("Password must contain at least one uppercase letter.")
	case s.RequireNumbers && !h.hasNumbers(password):
		return weak("Password must contain at least one number.")
	case s.RequireSpecial && !h.hasSpecialChars(password):
		return weak("Password must contain at least one special character.")
	case h.containsForbiddenWords(password, forbiddenWords):
		return weak("Password contains forbidden words.")
	}

	return nil
}

func weak(details string) error {
	return domainerrors.ErrPasswordStrength.WithDetails(details)
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
