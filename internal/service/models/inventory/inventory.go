package inventory

import "time"

// Inventory is the per-product stock record. Quantity is non-negative and is
// mutated only through the atomic guarded decrement during order placement.
type Inventory struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"productId"`
	Quantity      int        `json:"quantity"`
	MinStockLevel int        `json:"minStockLevel"`
	LastRestockAt *time.Time `json:"lastRestockAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
