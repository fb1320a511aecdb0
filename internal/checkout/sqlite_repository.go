package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_inventory/internal/domain"
)

const eventTypeOrderCompleted = "order.completed"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	query := `SELECT id, user_id, items, total_amount, discount_percent, idempotency_key, created_at
	          FROM orders WHERE idempotency_key = ?`

	var order domain.Order
	var itemsJSON []byte
	var idemKey sql.NullString
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&order.ID,
		&order.UserID,
		&itemsJSON,
		&order.TotalAmount,
		&order.DiscountPercent,
		&idemKey,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by idempotency key: %w", err)
	}

	order.IdempotencyKey = idemKey.String
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *Repository) CommitOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Conditional decrement: a no-op row means the product cannot cover the
	// requested quantity (or is gone), so the whole checkout rolls back.
	for _, item := range order.Items {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
			item.Quantity, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	var idemKey interface{}
	if order.IdempotencyKey != "" {
		idemKey = order.IdempotencyKey
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, items, total_amount, discount_percent, idempotency_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID.String(),
		order.UserID,
		itemsJSON,
		order.TotalAmount,
		order.DiscountPercent,
		idemKey,
		order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"order_id":         order.ID,
		"user_id":          order.UserID,
		"items":            order.Items,
		"total_amount":     order.TotalAmount,
		"discount_percent": order.DiscountPercent,
		"completed_at":     order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox (aggregate_id, event_type, payload, created_at)
		 VALUES (?, ?, ?, ?)`,
		order.ID.String(), eventTypeOrderCompleted, payload, time.Now())
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	return tx.Commit()
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at, processed_at
	          FROM outbox WHERE processed_at IS NULL ORDER BY id LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		ev := &OutboxEvent{}
		var processedAt sql.NullTime
		if err := rows.Scan(
			&ev.ID,
			&ev.AggregateID,
			&ev.EventType,
			&ev.Payload,
			&ev.CreatedAt,
			&processedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		if processedAt.Valid {
			ev.ProcessedAt = &processedAt.Time
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, eventID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE outbox SET processed_at = ? WHERE id = ? AND processed_at IS NULL`,
		time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("outbox event %d already processed or missing", eventID)
	}
	return nil
}
