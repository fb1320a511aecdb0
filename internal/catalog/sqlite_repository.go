package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_inventory/internal/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func validate(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidProduct)
	}
	if p.CostPrice < 0 || p.SellingPrice < 0 {
		return fmt.Errorf("%w: prices must be non-negative", ErrInvalidProduct)
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, p *domain.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE name = ?)`, p.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}

	p.CreatedAt = time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, quantity, cost_price, selling_price, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Quantity, p.CostPrice, p.SellingPrice, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("fetch product id: %w", err)
	}
	p.ID = id

	return tx.Commit()
}

func (r *SQLiteRepository) Update(ctx context.Context, p *domain.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE name = ? AND id != ?)`, p.Name, p.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET name = ?, quantity = ?, cost_price = ?, selling_price = ? WHERE id = ?`,
		p.Name, p.Quantity, p.CostPrice, p.SellingPrice, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return tx.Commit()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.getOne(ctx,
		`SELECT id, name, quantity, cost_price, selling_price, created_at
		 FROM products WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.getOne(ctx,
		`SELECT id, name, quantity, cost_price, selling_price, created_at
		 FROM products WHERE name = ?`, name)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Product, error) {
	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID,
		&p.Name,
		&p.Quantity,
		&p.CostPrice,
		&p.SellingPrice,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, quantity, cost_price, selling_price, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Quantity,
			&p.CostPrice,
			&p.SellingPrice,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}
