package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/infra/persistence/memory"

	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog(t *testing.T) repository.CatalogRepository {
	t.Helper()

	repo, err := memory.NewCatalogRepository(entity.DefaultProducts())
	require.NoError(t, err)

	return repo
}

func newTestEngine() *pricing.Engine {
	return pricing.NewEngine(entity.DefaultDiscountRules(), pricing.DefaultOptions())
}

func stockOf(t *testing.T, repo repository.CatalogRepository, name string) int {
	t.Helper()

	product, err := repo.FindByName(context.Background(), name)
	require.NoError(t, err)

	return product.AvailableQuantity
}

func signedInSession() *entity.Session {
	session := entity.NewSession()
	session.SignIn(entity.NewAccount("Ada", "ada@example.com", "hash"))

	return session
}
