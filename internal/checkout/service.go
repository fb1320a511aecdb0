package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_inventory/internal/domain"
	"github.com/google/uuid"
)

const (
	discountThreshold = 100.0
	discountRate      = 0.1
)

// Catalog is the slice of the catalog service checkout depends on.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Invalidate(ctx context.Context, productID int64)
}

// CartAccessor reads and clears the session cart.
type CartAccessor interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) error
}

type Service struct {
	repo    RepoInterface
	catalog Catalog
	cart    CartAccessor
}

func NewService(repo RepoInterface, catalog Catalog, cart CartAccessor) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		cart:    cart,
	}
}

// Checkout converts the user's cart into an order. Prices are re-read from
// the catalog at this point, not trusted from cart-add time, and stock is
// decremented atomically with the order append. A non-empty idempotencyKey
// makes retries return the already-committed order.
func (s *Service) Checkout(ctx context.Context, userID int64, idempotencyKey string) (*domain.Order, error) {
	if idempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, idempotencyKey)
		if err != nil && !errors.Is(err, ErrIdempotencyKeyNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
		if existing != nil {
			log.Printf("duplicate checkout detected idempotency_key = %v order_id = %v", idempotencyKey, existing.ID)
			return existing, nil
		}
	}

	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items, total, err := s.buildSnapshot(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	discount, percent := applyDiscount(total)

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total - discount,
		DiscountPercent: percent,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.CommitOrder(ctx, order); err != nil {
		return nil, err
	}

	// The order is committed; failures past this point must not fail checkout.
	for _, item := range items {
		s.catalog.Invalidate(ctx, item.ProductID)
	}
	if err := s.cart.Clear(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %d after checkout: %v", userID, err)
	}

	return order, nil
}

// buildSnapshot re-reads current prices and captures them on the line items.
func (s *Service) buildSnapshot(ctx context.Context, cartItems []domain.CartItem) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, 0, len(cartItems))
	var total float64

	for _, item := range cartItems {
		product, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get product %d: %w", item.ProductID, err)
		}

		subtotal := product.SellingPrice * float64(item.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.SellingPrice,
			Subtotal:    subtotal,
		})
		total += subtotal
	}

	return items, total, nil
}

// applyDiscount: 10% off the whole order once the total exceeds the threshold.
func applyDiscount(total float64) (discount float64, percent float64) {
	if total > discountThreshold {
		return total * discountRate, discountRate * 100
	}
	return 0, 0
}
