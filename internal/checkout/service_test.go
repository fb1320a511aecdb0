package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_EmptyCart(t *testing.T) {
	repo := &MockRepository{}
	svc := newTestService(repo, &MockCatalog{}, &MockCart{})

	order, err := svc.Checkout(context.Background(), 1, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	assert.Nil(t, repo.CommittedOrder, "empty cart must not produce an order")
}

func TestCheckout_NoDiscountBelowThreshold(t *testing.T) {
	repo := &MockRepository{}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "productA", Quantity: 10, SellingPrice: 30},
	}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	require.NoError(t, err)
	assert.InDelta(t, 60.0, order.TotalAmount, 1e-9)
	assert.Equal(t, 0.0, order.DiscountPercent)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "productA", order.Items[0].ProductName)
	assert.InDelta(t, 30.0, order.Items[0].UnitPrice, 1e-9)
}

func TestCheckout_DiscountAboveThreshold(t *testing.T) {
	repo := &MockRepository{}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "productA", Quantity: 10, SellingPrice: 60},
	}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	require.NoError(t, err)
	// total 120 -> 10% discount -> 108
	assert.InDelta(t, 108.0, order.TotalAmount, 1e-9)
	assert.Equal(t, 10.0, order.DiscountPercent)
}

func TestCheckout_TotalAtThreshold_NoDiscount(t *testing.T) {
	repo := &MockRepository{}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "productA", Quantity: 10, SellingPrice: 50},
	}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	require.NoError(t, err)
	// exactly 100 does not qualify, the rule is strictly greater
	assert.InDelta(t, 100.0, order.TotalAmount, 1e-9)
	assert.Equal(t, 0.0, order.DiscountPercent)
}

func TestCheckout_ClearsCartAndInvalidatesCache(t *testing.T) {
	repo := &MockRepository{}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "productA", Quantity: 10, SellingPrice: 30},
		2: {ID: 2, Name: "productB", Quantity: 5, SellingPrice: 15},
	}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, crt.ClearedUsers)
	assert.ElementsMatch(t, []int64{1, 2}, cat.Invalidated)
	require.NotNil(t, repo.CommittedOrder)
	assert.Equal(t, order.ID, repo.CommittedOrder.ID)
}

func TestCheckout_ProductDeletedSinceAdd(t *testing.T) {
	repo := &MockRepository{}
	cat := &MockCatalog{Products: map[int64]*domain.Product{}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 42, Quantity: 1}},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Nil(t, order)
	assert.Nil(t, repo.CommittedOrder)
	assert.Empty(t, crt.ClearedUsers, "failed checkout must leave the cart alone")
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	repo := &MockRepository{CommitErr: ErrInsufficientStock}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "productA", Quantity: 1, SellingPrice: 30},
	}}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
	}}
	svc := newTestService(repo, cat, crt)

	order, err := svc.Checkout(context.Background(), 1, "")

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, order)
	assert.Empty(t, crt.ClearedUsers)
	assert.Empty(t, cat.Invalidated)
}

func TestCheckout_DuplicateIdempotencyKey(t *testing.T) {
	existing := &domain.Order{
		ID:             uuid.New(),
		UserID:         1,
		TotalAmount:    60,
		IdempotencyKey: "key-1",
	}
	repo := &MockRepository{ExistingOrder: existing}
	crt := &MockCart{Cart: &domain.Cart{
		UserID: 1,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
	}}
	svc := newTestService(repo, &MockCatalog{}, crt)

	order, err := svc.Checkout(context.Background(), 1, "key-1")

	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.ID)
	assert.Nil(t, repo.CommittedOrder, "duplicate request must not commit a second order")
	assert.Empty(t, crt.ClearedUsers)
}

func TestCheckout_IdempotencyLookupError(t *testing.T) {
	repo := &MockRepository{GetErr: errors.New("repository error")}
	svc := newTestService(repo, &MockCatalog{}, &MockCart{})

	order, err := svc.Checkout(context.Background(), 1, "key-1")

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "failed to check idempotency")
}
