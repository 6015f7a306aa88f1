// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "supermarket/internal/delivery/context"
	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/repository"
	"supermarket/internal/domain/service"
	"supermarket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	validate    *validator.Validate
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      params.Logger,
	}
}

// log returns a session-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register opens an account and signs it into the session.
func (srv *accountService) Register(ctx context.Context, session *entity.Session, input *usecase.RegisterInput) (*entity.Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(describeValidation(err))
	}

	_, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, errors.Wrapf(domainerrors.ErrAccountAlreadyExists, "email %s", input.Email)
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up account")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Warn("Password rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	account := entity.NewAccount(input.Name, input.Email, hash)
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	session.SignIn(account)
	srv.log(ctx).Info("Account registered", slog.String("account_id", account.ID.String()))

	return account, nil
}

// Login checks the credentials and signs the account into the session.
// Unknown email and wrong password are indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, session *entity.Session, input *usecase.LoginInput) (*entity.Account, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Info("Login failed", slog.String("reason", "unknown email"))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up account")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials
	}

	session.SignIn(account)
	srv.log(ctx).Info("Logged in", slog.String("account_id", account.ID.String()))

	return account, nil
}

// Logout returns the session to guest mode. The account keeps its cart.
func (srv *accountService) Logout(ctx context.Context, session *entity.Session) {
	if session.IsGuest() {
		return
	}

	srv.log(ctx).Info("Logged out", slog.String("account_id", session.Account.ID.String()))
	session.SignOut()
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required.")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address.")
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param()+" characters.")
		default:
			msgs = append(msgs, fe.Field()+" is invalid.")
		}
	}

	return strings.Join(msgs, " ")
}
