package recommend

import (
	"context"
	"errors"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/domain"
)

// PurchaseHistory is the slice of the order ledger recommendations read.
type PurchaseHistory interface {
	DistinctProductIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

type ProductGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service derives recommendations as the distinct set of products the user
// ever purchased. No ranking, no similarity model; a pure read.
type Service struct {
	history PurchaseHistory
	catalog ProductGetter
}

func NewService(history PurchaseHistory, catalog ProductGetter) *Service {
	return &Service{
		history: history,
		catalog: catalog,
	}
}

func (s *Service) Recommend(ctx context.Context, userID int64) ([]*domain.Product, error) {
	ids, err := s.history.DistinctProductIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetByID(ctx, id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue // product deleted since the purchase
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
