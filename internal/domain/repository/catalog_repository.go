// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"iter"

	"supermarket/internal/domain/entity"
)

// CatalogRepository defines the operations on the product catalog.
// Products handed out are snapshots; stock only changes through
// DecrementStock and Restock.
type CatalogRepository interface {
	// List returns every product in shelf order, including sold-out ones.
	List(ctx context.Context) []entity.Product

	// ByCategory yields in-stock products of category in shelf order.
	// The sequence can be ranged over more than once.
	ByCategory(ctx context.Context, category entity.Category) iter.Seq[entity.Product]

	// FindByName retrieves a single product by its unique name.
	FindByName(ctx context.Context, name string) (entity.Product, error)

	// DecrementStock takes qty units off the shelf. It fails without changing
	// anything when fewer than qty units are available.
	DecrementStock(ctx context.Context, name string, qty int) error

	// Restock puts qty units back on the shelf.
	Restock(ctx context.Context, name string, qty int) error
}
