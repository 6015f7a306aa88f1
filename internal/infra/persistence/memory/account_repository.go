package memory

import (
	"context"
	"strings"
	"sync"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/repository"
	"supermarket/internal/errors"
)

// accountRepository implements repository.AccountRepository keyed by the
// lower-cased email.
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{
		accounts: make(map[string]*entity.Account),
	}
}

// FindByEmail retrieves a single account by email, ignoring case.
func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	account, ok := repo.accounts[emailKey(email)]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

// Create stores a new account.
func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	if account == nil {
		return errors.New("account is nil")
	}

	key := emailKey(account.Email)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.accounts[key]; exists {
		return errors.Wrapf(domainerrors.ErrAccountAlreadyExists, "email %s", account.Email)
	}
	repo.accounts[key] = account

	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
