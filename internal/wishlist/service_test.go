package wishlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/db"
	"github.com/fjod/go_inventory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCatalog implements ProductGetter for testing
type MockCatalog struct {
	Products map[int64]*domain.Product
}

func (m *MockCatalog) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func setupService(t *testing.T, products map[int64]*domain.Product) *Service {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, "../../migrations"))
	return NewService(NewSQLiteRepository(database), &MockCatalog{Products: products})
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc := setupService(t, nil)

	err := svc.Add(context.Background(), 1, 42)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestList_SkipsDeletedProducts(t *testing.T) {
	products := map[int64]*domain.Product{
		10: {ID: 10, Name: "Laptop"},
		11: {ID: 11, Name: "Phone"},
	}
	svc := setupService(t, products)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 10))
	require.NoError(t, svc.Add(ctx, 1, 11))

	// product 11 disappears from the catalog after wishlisting
	delete(products, 11)

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Laptop", got[0].Name)
}
