package checkout

import (
	"context"
	"time"

	"github.com/fjod/go_inventory/internal/domain"
)

// OutboxEvent is a pending integration event written in the same transaction
// as the order it describes.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type RepoInterface interface {
	// GetOrderByIdempotencyKey returns the order committed under the key,
	// or ErrIdempotencyKeyNotFound.
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)

	// CommitOrder atomically decrements stock for every line item, appends
	// the order and writes its outbox event. Returns ErrInsufficientStock
	// (rolling everything back) if any product cannot cover its quantity.
	CommitOrder(ctx context.Context, order *domain.Order) error

	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, eventID int64) error
}
