package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_inventory/internal/catalog/cache"
	"github.com/fjod/go_inventory/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service wraps the catalog repository with an optional read-through cache.
// A nil cache disables caching entirely.
type Service struct {
	repo  Repository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cache cache.ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprint(id), func() (interface{}, error) {

		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil // product is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.GetByID(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), product)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, p *domain.Product) error {
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *domain.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.Invalidate(ctx, p.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	return nil
}

// Invalidate drops the cached copy of a product. Checkout calls this after
// decrementing stock outside the catalog's own write path.
func (s *Service) Invalidate(_ context.Context, productID int64) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, productID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
