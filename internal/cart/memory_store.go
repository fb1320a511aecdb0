package cart

import (
	"context"
	"sync"

	"github.com/fjod/go_inventory/internal/domain"
)

// MemoryStore implements Store with in-memory storage
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart // userID -> cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[int64]*domain.Cart),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (s *MemoryStore) Save(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// copyCart keeps callers from mutating the stored cart through the returned pointer.
func copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = make([]domain.CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}
