package wishlist

import (
	"context"
	"errors"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/domain"
)

type ProductGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	repo    Repository
	catalog ProductGetter
}

func NewService(repo Repository, catalog ProductGetter) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
	}
}

// Add rejects unknown products before touching the store.
func (s *Service) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	return s.repo.Remove(ctx, userID, productID)
}

// List resolves wishlisted ids against the live catalog; products deleted
// since wishlisting are skipped.
func (s *Service) List(ctx context.Context, userID int64) ([]*domain.Product, error) {
	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetByID(ctx, id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
