package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for transactions and
// their line items. Line items cascade on transaction deletion.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertTransaction persists the transaction header with a zero total. The
// total is set once all lines are recorded.
func (r *Repository) InsertTransaction(ctx context.Context, txn Transaction) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO transactions (transaction_id, transaction_date, created_at, total_amount)
VALUES ($1, $2, $3, 0)`, txn.ID, txn.Date, txn.CreatedAt)
	return err
}

// InsertLineItem records one line of a transaction.
func (r *Repository) InsertLineItem(ctx context.Context, txnID uuid.UUID, line LineItem) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO line_items (transaction_id, item_code, quantity, unit_price)
VALUES ($1, $2, $3, $4)`, txnID, line.ItemCode, line.Quantity, line.UnitPrice)
	return err
}

// SetTotalAmount stores the computed total for a transaction.
func (r *Repository) SetTotalAmount(ctx context.Context, txnID uuid.UUID, total float64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE transactions SET total_amount = $2 WHERE transaction_id = $1`, txnID, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction; its line items cascade.
func (r *Repository) DeleteTransaction(ctx context.Context, txnID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, txnID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTransaction loads a transaction with its line items.
func (r *Repository) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var txn Transaction
	var date time.Time
	err := r.pool.QueryRow(ctx, `SELECT transaction_id, transaction_date, created_at, total_amount
FROM transactions WHERE transaction_id = $1`, id).
		Scan(&txn.ID, &date, &txn.CreatedAt, &txn.TotalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	txn.Date = date

	rows, err := r.pool.Query(ctx, `SELECT item_code, quantity, unit_price
FROM line_items WHERE transaction_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line LineItem
		if err := rows.Scan(&line.ItemCode, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		txn.Lines = append(txn.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &txn, nil
}
