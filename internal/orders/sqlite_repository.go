package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/fjod/go_inventory/internal/domain"
	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, user_id, items, total_amount, discount_percent, idempotency_key, created_at`

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id.String())
	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *Repository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func scanOrder(scan func(dest ...interface{}) error) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	var idemKey sql.NullString
	err := scan(
		&order.ID,
		&order.UserID,
		&itemsJSON,
		&order.TotalAmount,
		&order.DiscountPercent,
		&idemKey,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.IdempotencyKey = idemKey.String
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *Repository) SumTotalPrice(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum total price: %w", err)
	}
	return sum, nil
}

func (r *Repository) GroupBySignature(ctx context.Context) (map[string]int, error) {
	orders, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]int)
	for _, order := range orders {
		groups[order.Signature()]++
	}
	return groups, nil
}

func (r *Repository) ProductTotals(ctx context.Context) (map[int64]int64, error) {
	orders, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int64)
	for _, order := range orders {
		for _, item := range order.Items {
			totals[item.ProductID] += int64(item.Quantity)
		}
	}
	return totals, nil
}

func (r *Repository) DistinctProductIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	orders, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			seen[item.ProductID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
