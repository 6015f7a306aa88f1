// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"supermarket/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open a new account.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginInput defines the data required for a shopper to log in.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// AccountUsecase defines the interface for account-related business operations.
// Successful registration and login both sign the account into the session.
type AccountUsecase interface {
	Register(ctx context.Context, session *entity.Session, input *RegisterInput) (*entity.Account, error)
	Login(ctx context.Context, session *entity.Session, input *LoginInput) (*entity.Account, error)
	Logout(ctx context.Context, session *entity.Session)
}
