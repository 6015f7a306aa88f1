package repository

import (
	"context"
	"errors"

	"supermarket/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when no account has the email.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByEmail retrieves a single account by email, ignoring case.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create stores a new account. Emails are unique ignoring case.
	Create(ctx context.Context, account *entity.Account) error
}
