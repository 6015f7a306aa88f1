package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one shopper's interaction with the till: who is signed in and
// which cart is being filled. It is never shared between shoppers.
type Session struct {
	ID        uuid.UUID
	Account   *Account // nil while shopping as a guest
	StartedAt time.Time

	guestCart *Cart
}

// NewSession starts a guest session.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		guestCart: NewCart(),
	}
}

// IsGuest reports whether no account is signed in.
func (s *Session) IsGuest() bool {
	return s.Account == nil
}

// Cart returns the cart in use: the account's when signed in, else the guest cart.
func (s *Session) Cart() *Cart {
	if s.Account != nil {
		return s.Account.Cart
	}

	return s.guestCart
}

// SignIn binds account to the session. Anything already in the guest cart
// moves into the account's cart.
func (s *Session) SignIn(account *Account) {
	if account.Cart == nil {
		account.Cart = NewCart()
	}
	account.Cart.Merge(s.guestCart)
	s.Account = account
}

// SignOut returns the session to guest mode. The account keeps its cart.
func (s *Session) SignOut() {
	s.Account = nil
}
