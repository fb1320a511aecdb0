package cart

import (
	"context"
	"errors"

	"github.com/fjod/go_inventory/internal/domain"
)

// Common errors returned by cart operations
var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store holds session-scoped carts. Carts are never persisted beyond the
// session: the memory store dies with the process, the redis store expires.
type Store interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID int64) error
}
