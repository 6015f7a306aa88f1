package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Account is a registered shopper. It owns a cart that survives logout for
// the lifetime of the process.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Name         string    // The shopper's display name.
	Email        string    // Login identifier, unique ignoring case.
	PasswordHash string    // bcrypt hash of the password; never the plaintext.
	Cart         *Cart     // The account's shopping cart.
	Favorites    []string  // Favorite product names in the order they were added.
	Orders       []*Order  // Confirmed orders, oldest first.
	CreatedAt    time.Time // Timestamp of when this account was registered.
}

// NewAccount builds an account with an empty cart.
func NewAccount(name, email, passwordHash string) *Account {
	return &Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Cart:         NewCart(),
		CreatedAt:    time.Now(),
	}
}

// AddFavorite records name as a favorite. It reports false if it was already one.
func (a *Account) AddFavorite(name string) bool {
	if slices.Contains(a.Favorites, name) {
		return false
	}
	a.Favorites = append(a.Favorites, name)

	return true
}

// RecordOrder appends a confirmed order to the purchase history.
func (a *Account) RecordOrder(order *Order) {
	a.Orders = append(a.Orders, order)
}
