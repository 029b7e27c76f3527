package inventorysvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iinventoryrepo"
	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
)

// InventoryService performs the authoritative stock deduction.
type InventoryService struct{}

// NewInventoryService creates a new InventoryService.
func NewInventoryService() *InventoryService {
	return &InventoryService{}
}

// DeductStock decrements stock for every requested item through the
// repository's atomic conditional update. It must be called with the
// transaction-scoped inventory repository of an open unit of work: when any
// item comes up short the caller rolls the whole transaction back, undoing
// deductions already applied to earlier items.
func (s *InventoryService) DeductStock(
	ctx context.Context,
	repo iinventoryrepo.IInventoryRepository,
	items []order.ItemRequest,
) error {
	for _, item := range items {
		ok, err := repo.AtomicDeductStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to deduct stock for product %s: %w", item.ProductID, err)
		}

		if !ok {
			// A concurrent placement won the race since the advisory pre-check.
			return &errs.InsufficientInventoryError{
				ProductID: item.ProductID,
				Available: -1,
				Requested: item.Quantity,
			}
		}

		slog.InfoContext(ctx, "Inventory deducted",
			"product_id", item.ProductID,
			"quantity", item.Quantity,
		)
	}

	return nil
}
