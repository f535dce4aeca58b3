package catalog

import "errors"

// Item is a sellable product tracked together with its stock level.
// StartingQuantity is fixed at creation; CurrentQuantity is mutated only by
// the sales transaction engine.
type Item struct {
	ItemCode         string  `json:"item_code"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Category         string  `json:"category"`
	StartingQuantity int     `json:"starting_quantity"`
	CurrentQuantity  int     `json:"current_quantity"`
}

// CreateItemRequest describes a new catalog entry.
type CreateItemRequest struct {
	ItemCode         string  `json:"item_code" validate:"required,max=50"`
	Name             string  `json:"name" validate:"required,max=255"`
	Price            float64 `json:"price" validate:"gte=0"`
	Category         string  `json:"category" validate:"required,max=255"`
	StartingQuantity int     `json:"starting_quantity" validate:"gte=0"`
}

// ErrNotFound indicates the referenced item code does not exist.
var ErrNotFound = errors.New("catalog: item not found")

// ErrInsufficientStock indicates the requested quantity exceeds current stock.
var ErrInsufficientStock = errors.New("catalog: insufficient stock")

// ErrDuplicate indicates the item code is already taken.
var ErrDuplicate = errors.New("catalog: item code already exists")
