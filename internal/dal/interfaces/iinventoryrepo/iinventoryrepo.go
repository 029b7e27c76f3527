package iinventoryrepo

import (
	"context"

	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
)

// IInventoryRepository is the inventory access contract. AtomicDeductStock is
// the only stock mutation in the order pipeline: a single conditional UPDATE
// that decrements quantity only when enough stock remains, reporting whether
// a row matched.
type IInventoryRepository interface {
	GetAvailableStock(ctx context.Context, productID string) (int, error)
	AtomicDeductStock(ctx context.Context, productID string, quantity int) (bool, error)
	QueryBelowMinStock(ctx context.Context, limit int) ([]inventory.Inventory, error)
}
