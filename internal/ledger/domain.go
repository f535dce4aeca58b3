package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Transaction records one completed sale and owns its line items.
type Transaction struct {
	ID          uuid.UUID  `json:"transaction_id"`
	Date        time.Time  `json:"transaction_date"`
	CreatedAt   time.Time  `json:"created_at"`
	TotalAmount float64    `json:"total_amount"`
	Lines       []LineItem `json:"line_items"`
}

// LineItem is one item entry within a transaction. UnitPrice is a snapshot of
// the catalog price at sale time and never changes afterwards.
type LineItem struct {
	ItemCode  string  `json:"item_code"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SaleLine is one requested line of a sale.
type SaleLine struct {
	ItemCode string `json:"item_code" validate:"required,max=50"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// SaleRequest is the payload accepted by the add-sales endpoint.
type SaleRequest struct {
	Items []SaleLine `json:"items" validate:"required,min=1,dive"`
}

// ErrEmptyRequest indicates a sale with no lines.
var ErrEmptyRequest = errors.New("ledger: transaction requires at least one line")

// ErrInvalidQuantity indicates a line quantity below 1.
var ErrInvalidQuantity = errors.New("ledger: quantity must be at least 1")

// ErrNotFound indicates the transaction does not exist (or was already undone).
var ErrNotFound = errors.New("ledger: transaction not found")
