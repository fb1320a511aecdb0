package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fjod/go_inventory/internal/checkout"
	"github.com/fjod/go_inventory/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService implements CheckoutService for testing
type MockCheckoutService struct {
	Order   *domain.Order
	Err     error
	LastKey string
}

func (m *MockCheckoutService) Checkout(_ context.Context, _ int64, idempotencyKey string) (*domain.Order, error) {
	m.LastKey = idempotencyKey
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func checkoutRouter(svc CheckoutService) *chi.Mux {
	h := NewCheckoutHandler(svc, time.Second)
	r := chi.NewRouter()
	r.Use(MockAuthMiddleware)
	r.Post("/checkout", h.Checkout)
	return r
}

func TestCheckout_Created(t *testing.T) {
	svc := &MockCheckoutService{Order: &domain.Order{
		ID:          uuid.New(),
		UserID:      1,
		TotalAmount: 108,
	}}
	router := checkoutRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"idempotency_key":"key-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "key-1", svc.LastKey)

	var got domain.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, svc.Order.ID, got.ID)
}

func TestCheckout_EmptyBodyAllowed(t *testing.T) {
	svc := &MockCheckoutService{Order: &domain.Order{ID: uuid.New(), UserID: 1}}
	router := checkoutRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, svc.LastKey)
}

func TestCheckout_EmptyCart(t *testing.T) {
	router := checkoutRouter(&MockCheckoutService{Err: checkout.ErrEmptyCart})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	router := checkoutRouter(&MockCheckoutService{Err: checkout.ErrInsufficientStock})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "insufficient_stock", resp.Code)
}

func TestCheckout_NoAuth(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{}, time.Second)
	r := chi.NewRouter()
	r.Post("/checkout", h.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
