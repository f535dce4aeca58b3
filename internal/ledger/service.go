package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-pos/meridian-pos/internal/catalog"
)

// CatalogPort is the subset of catalog operations the engine reads and
// mutates. Stock mutation is exclusive to this engine for the duration of one
// CreateTransaction or UndoTransaction call.
type CatalogPort interface {
	GetItem(ctx context.Context, code string) (*catalog.Item, error)
	DecrementStock(ctx context.Context, code string, qty int) error
	RestoreStock(ctx context.Context, code string, qty int) error
}

// RepositoryPort persists transactions and line items.
type RepositoryPort interface {
	InsertTransaction(ctx context.Context, txn Transaction) error
	InsertLineItem(ctx context.Context, txnID uuid.UUID, line LineItem) error
	SetTotalAmount(ctx context.Context, txnID uuid.UUID, total float64) error
	DeleteTransaction(ctx context.Context, txnID uuid.UUID) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

// Service is the transaction engine. It validates and applies sales against
// the catalog and the ledger, compensating partial effects on failure so the
// caller never observes a half-applied sale.
type Service struct {
	repo    RepositoryPort
	catalog CatalogPort
	now     func() time.Time
}

// NewService wires the engine with its collaborators.
func NewService(repo RepositoryPort, catalogPort CatalogPort) *Service {
	return &Service{
		repo:    repo,
		catalog: catalogPort,
		now:     time.Now,
	}
}

// WithNow overrides the engine clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// CreateTransaction applies a sale. Lines are processed in input order: each
// line snapshots the item's current price, decrements stock atomically and is
// recorded against the transaction. If any line fails, every effect applied
// so far is reversed before the error is surfaced.
func (s *Service) CreateTransaction(ctx context.Context, lines []SaleLine) (*Transaction, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyRequest
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %s", ErrInvalidQuantity, line.ItemCode)
		}
	}

	now := s.now()
	txn := Transaction{ID: uuid.New(), Date: dateOnly(now), CreatedAt: now}
	if err := s.repo.InsertTransaction(ctx, txn); err != nil {
		return nil, err
	}

	var applied []LineItem
	var total float64
	for _, line := range lines {
		item, err := s.catalog.GetItem(ctx, line.ItemCode)
		if err != nil {
			return nil, s.abort(ctx, txn.ID, applied, fmt.Errorf("item %s: %w", line.ItemCode, err))
		}
		if err := s.catalog.DecrementStock(ctx, line.ItemCode, line.Quantity); err != nil {
			return nil, s.abort(ctx, txn.ID, applied, fmt.Errorf("item %s: %w", line.ItemCode, err))
		}
		recorded := LineItem{ItemCode: item.ItemCode, Quantity: line.Quantity, UnitPrice: item.Price}
		if err := s.repo.InsertLineItem(ctx, txn.ID, recorded); err != nil {
			return nil, s.abort(ctx, txn.ID, append(applied, recorded), err)
		}
		applied = append(applied, recorded)
		total += float64(line.Quantity) * item.Price
	}

	if err := s.repo.SetTotalAmount(ctx, txn.ID, total); err != nil {
		return nil, s.abort(ctx, txn.ID, applied, err)
	}
	txn.TotalAmount = total
	txn.Lines = applied
	return &txn, nil
}

// abort reverses the partial effects of a failed sale: restores stock for
// every applied line, newest first, and deletes the transaction record.
func (s *Service) abort(ctx context.Context, txnID uuid.UUID, applied []LineItem, cause error) error {
	for i := len(applied) - 1; i >= 0; i-- {
		line := applied[i]
		if err := s.catalog.RestoreStock(ctx, line.ItemCode, line.Quantity); err != nil {
			return errors.Join(cause, fmt.Errorf("rollback stock for %s: %w", line.ItemCode, err))
		}
	}
	if err := s.repo.DeleteTransaction(ctx, txnID); err != nil {
		return errors.Join(cause, fmt.Errorf("rollback transaction %s: %w", txnID, err))
	}
	return cause
}

// UndoTransaction compensates a completed sale: each line's quantity is
// restored to its item, then the transaction and its lines are deleted. It is
// not idempotent; invoking it again for an already-undone transaction fails
// with ErrNotFound.
func (s *Service) UndoTransaction(ctx context.Context, id uuid.UUID) error {
	txn, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	for _, line := range txn.Lines {
		if err := s.catalog.RestoreStock(ctx, line.ItemCode, line.Quantity); err != nil {
			return fmt.Errorf("restore stock for %s: %w", line.ItemCode, err)
		}
	}
	return s.repo.DeleteTransaction(ctx, id)
}

// GetTransaction loads a transaction with its lines.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
