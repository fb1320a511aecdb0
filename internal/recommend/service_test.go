package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockHistory implements PurchaseHistory for testing
type MockHistory struct {
	IDs map[int64][]int64
	Err error
}

func (m *MockHistory) DistinctProductIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.IDs[userID], nil
}

// MockCatalog implements ProductGetter for testing
type MockCatalog struct {
	Products map[int64]*domain.Product
	Err      error
}

func (m *MockCatalog) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func TestRecommend_ReturnsPurchasedProducts(t *testing.T) {
	history := &MockHistory{IDs: map[int64][]int64{1: {10, 11}}}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		10: {ID: 10, Name: "Laptop"},
		11: {ID: 11, Name: "Phone"},
		12: {ID: 12, Name: "Tablet"},
	}}
	svc := NewService(history, cat)

	got, err := svc.Recommend(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Laptop", got[0].Name)
	assert.Equal(t, "Phone", got[1].Name)
}

func TestRecommend_NoPurchases(t *testing.T) {
	svc := NewService(&MockHistory{}, &MockCatalog{})

	got, err := svc.Recommend(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_SkipsDeletedProducts(t *testing.T) {
	history := &MockHistory{IDs: map[int64][]int64{1: {10, 11}}}
	cat := &MockCatalog{Products: map[int64]*domain.Product{
		11: {ID: 11, Name: "Phone"},
	}}
	svc := NewService(history, cat)

	got, err := svc.Recommend(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Phone", got[0].Name)
}

func TestRecommend_HistoryError(t *testing.T) {
	history := &MockHistory{Err: errors.New("ledger unavailable")}
	svc := NewService(history, &MockCatalog{})

	_, err := svc.Recommend(context.Background(), 1)
	assert.Error(t, err)
}

func TestRecommend_CatalogError(t *testing.T) {
	history := &MockHistory{IDs: map[int64][]int64{1: {10}}}
	cat := &MockCatalog{Err: errors.New("catalog unavailable")}
	svc := NewService(history, cat)

	_, err := svc.Recommend(context.Background(), 1)
	assert.Error(t, err)
}
