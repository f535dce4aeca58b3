package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for catalog items.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetItem returns the item with the given code.
func (r *Repository) GetItem(ctx context.Context, code string) (*Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx, `SELECT item_code, name, price, category, starting_quantity, current_quantity
FROM items WHERE item_code = $1`, code).
		Scan(&item.ItemCode, &item.Name, &item.Price, &item.Category, &item.StartingQuantity, &item.CurrentQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListItems returns all catalog items ordered by code.
func (r *Repository) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT item_code, name, price, category, starting_quantity, current_quantity
FROM items ORDER BY item_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ItemCode, &item.Name, &item.Price, &item.Category, &item.StartingQuantity, &item.CurrentQuantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateItem inserts a new item with current quantity equal to the starting quantity.
func (r *Repository) CreateItem(ctx context.Context, item Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO items (item_code, name, price, category, starting_quantity, current_quantity)
VALUES ($1, $2, $3, $4, $5, $5)`, item.ItemCode, item.Name, item.Price, item.Category, item.StartingQuantity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DecrementStock atomically subtracts qty from the item's current quantity.
// The update matches only when enough stock remains, so a concurrent sale can
// never drive the counter below zero.
func (r *Repository) DecrementStock(ctx context.Context, code string, qty int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE items SET current_quantity = current_quantity - $2
WHERE item_code = $1 AND current_quantity >= $2`, code, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetItem(ctx, code); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock adds qty back to the item's current quantity.
func (r *Repository) RestoreStock(ctx context.Context, code string, qty int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE items SET current_quantity = current_quantity + $2
WHERE item_code = $1`, code, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
