package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_inventory/internal/domain"
)

// ProductGetter is the slice of the catalog the cart needs for stock checks.
type ProductGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	store   Store
	catalog ProductGetter
}

func NewService(store Store, catalog ProductGetter) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
	}
}

// Get returns the user's cart, or an empty cart when none exists yet.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return &domain.Cart{
			UserID:    userID,
			Items:     nil,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem accumulates quantity onto any existing entry for the product.
// The stock check covers the cumulative requested quantity; stock is checked
// again (and decremented) at checkout, so passing here is not a reservation.
func (s *Service) AddItem(ctx context.Context, userID int64, productID int64, quantity int32) (*domain.Cart, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	item := cart.Item(productID)
	if item != nil {
		requested += item.Quantity
	}
	if requested > product.Quantity {
		return nil, fmt.Errorf("%w: requested %d of product %d, %d available",
			ErrInsufficientStock, requested, productID, product.Quantity)
	}

	if item != nil {
		item.Quantity = requested
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity replaces the requested quantity for a product already in the cart.
func (s *Service) UpdateQuantity(ctx context.Context, userID int64, productID int64, quantity int32) (*domain.Cart, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, fmt.Errorf("%w: requested %d of product %d, %d available",
			ErrInsufficientStock, quantity, productID, product.Quantity)
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.Item(productID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	item.Quantity = quantity
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID int64, productID int64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	cart.Items = items
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart; called after checkout or logout.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.store.Delete(ctx, userID)
}
