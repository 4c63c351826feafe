package billing

import (
	"sync"

	"kirana-backend/internal/catalog"
)

// Carts keeps one in-progress cart per authenticated user. UI interactions
// within a session are serialized by the caller; the registry itself only
// guards the map.
type Carts struct {
	cat *catalog.Catalog

	mu     sync.Mutex
	byUser map[string]*Cart
}

func NewCarts(cat *catalog.Catalog) *Carts {
	return &Carts{cat: cat, byUser: map[string]*Cart{}}
}

// Get returns the user's active cart, creating one with the given default
// GST rate when none exists yet.
func (s *Carts) Get(userID string, defaultGST float64) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.byUser[userID]
	if !ok {
		cart = NewCart(s.cat, defaultGST)
		s.byUser[userID] = cart
	}
	return cart
}

// Clear drops the user's cart, typically after a completed checkout.
func (s *Carts) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
