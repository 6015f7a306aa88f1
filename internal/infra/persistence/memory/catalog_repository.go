// Package memory contains the in-process implementation of the persistence
// layer. State lives for the lifetime of the process only.
package memory

import (
	"context"
	"iter"
	"sync"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/repository"
	"supermarket/internal/errors"
)

// catalogRepository implements repository.CatalogRepository over a slice
// kept in seed order. A mutex makes every stock change an atomic
// check-and-update, so readers on other goroutines never see lost updates.
type catalogRepository struct {
	mu       sync.RWMutex
	products []*entity.Product
	byName   map[string]*entity.Product
}

// NewCatalogRepository seeds the catalog. Product names must be unique and
// stock must not be negative.
func NewCatalogRepository(products []entity.Product) (repository.CatalogRepository, error) {
	repo := &catalogRepository{
		products: make([]*entity.Product, 0, len(products)),
		byName:   make(map[string]*entity.Product, len(products)),
	}

	for _, p := range products {
		if _, exists := repo.byName[p.Name]; exists {
			return nil, errors.Errorf("duplicate product %q in catalog seed", p.Name)
		}
		if p.AvailableQuantity < 0 {
			return nil, errors.Errorf("product %q has negative stock", p.Name)
		}

		product := p
		repo.products = append(repo.products, &product)
		repo.byName[product.Name] = &product
	}

	return repo, nil
}

// List returns every product in shelf order, including sold-out ones.
func (repo *catalogRepository) List(_ context.Context) []entity.Product {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	products := make([]entity.Product, 0, len(repo.products))
	for _, p := range repo.products {
		products = append(products, *p)
	}

	return products
}

// ByCategory yields in-stock products of category. Each range over the
// sequence takes a fresh snapshot, so the loop body may mutate stock.
func (repo *catalogRepository) ByCategory(_ context.Context, category entity.Category) iter.Seq[entity.Product] {
	return func(yield func(entity.Product) bool) {
		for _, p := range repo.snapshot(category) {
			if !yield(p) {
				return
			}
		}
	}
}

func (repo *catalogRepository) snapshot(category entity.Category) []entity.Product {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var matched []entity.Product
	for _, p := range repo.products {
		if p.Category == category && p.InStock() {
			matched = append(matched, *p)
		}
	}

	return matched
}

// FindByName retrieves a single product by its unique name.
func (repo *catalogRepository) FindByName(_ context.Context, name string) (entity.Product, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	p, ok := repo.byName[name]
	if !ok {
		return entity.Product{}, errors.Wrapf(domainerrors.ErrProductNotFound, "product %q", name)
	}

	return *p, nil
}

// DecrementStock takes qty units off the shelf, or fails and leaves stock alone.
func (repo *catalogRepository) DecrementStock(_ context.Context, name string, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	p, ok := repo.byName[name]
	if !ok {
		return errors.Wrapf(domainerrors.ErrProductNotFound, "product %q", name)
	}
	if p.AvailableQuantity < qty {
		return errors.Wrapf(domainerrors.ErrInsufficientStock, "%d %s requested, %d available", qty, name, p.AvailableQuantity)
	}

	p.AvailableQuantity -= qty

	return nil
}

// Restock puts qty units back on the shelf.
func (repo *catalogRepository) Restock(_ context.Context, name string, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	p, ok := repo.byName[name]
	if !ok {
		return errors.Wrapf(domainerrors.ErrProductNotFound, "product %q", name)
	}

	p.AvailableQuantity += qty

	return nil
}
