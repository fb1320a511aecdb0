package orders

import (
	"context"
	"errors"

	"github.com/fjod/go_inventory/internal/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// Ledger is the read side of the order store. Orders are appended only by
// the checkout transaction; there is no update or delete.
type Ledger interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)

	// SumTotalPrice is total revenue across every order.
	SumTotalPrice(ctx context.Context) (float64, error)

	// GroupBySignature counts orders per identical line-item set.
	GroupBySignature(ctx context.Context) (map[string]int, error)

	// ProductTotals sums purchased quantity per product across all orders.
	ProductTotals(ctx context.Context) (map[int64]int64, error)

	// DistinctProductIDsByUser is the set of products the user ever bought.
	DistinctProductIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}
