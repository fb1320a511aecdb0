package checkout

import (
	"context"

	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/domain"
)

// MockRepository implements RepoInterface for testing
type MockRepository struct {
	ExistingOrder  *domain.Order // returned for any idempotency key lookup
	GetErr         error
	CommitErr      error
	CommittedOrder *domain.Order // captures the order passed to CommitOrder
	OutboxEvents   []*OutboxEvent
	ProcessedIDs   []int64
	MarkErr        error
}

func (m *MockRepository) GetOrderByIdempotencyKey(_ context.Context, _ string) (*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.ExistingOrder == nil {
		return nil, ErrIdempotencyKeyNotFound
	}
	return m.ExistingOrder, nil
}

func (m *MockRepository) CommitOrder(_ context.Context, order *domain.Order) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.CommittedOrder = order
	return nil
}

func (m *MockRepository) GetUnprocessedEvents(_ context.Context, limit int) ([]*OutboxEvent, error) {
	if len(m.OutboxEvents) > limit {
		return m.OutboxEvents[:limit], nil
	}
	return m.OutboxEvents, nil
}

func (m *MockRepository) MarkEventAsProcessed(_ context.Context, id int64) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.ProcessedIDs = append(m.ProcessedIDs, id)
	return nil
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	Products    map[int64]*domain.Product
	Invalidated []int64
}

func (m *MockCatalog) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (m *MockCatalog) Invalidate(_ context.Context, productID int64) {
	m.Invalidated = append(m.Invalidated, productID)
}

// MockCart implements CartAccessor for testing
type MockCart struct {
	Cart         *domain.Cart
	GetErr       error
	ClearErr     error
	ClearedUsers []int64
}

func (m *MockCart) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Cart == nil {
		return &domain.Cart{UserID: userID}, nil
	}
	return m.Cart, nil
}

func (m *MockCart) Clear(_ context.Context, userID int64) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.ClearedUsers = append(m.ClearedUsers, userID)
	return nil
}

// newTestService creates a fully wired checkout Service for testing
func newTestService(repo *MockRepository, cat *MockCatalog, crt *MockCart) *Service {
	return NewService(repo, cat, crt)
}
