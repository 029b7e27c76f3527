package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iinventoryrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iproductrepo"
	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

// Validator checks requested items against the catalog and current stock and
// builds priced line items. Read-only: the stock read here is advisory and
// exists to fail fast before the payment call. The authoritative check is the
// atomic decrement inside the place-order transaction.
type Validator struct {
	productRepo   iproductrepo.IProductRepository
	inventoryRepo iinventoryrepo.IInventoryRepository
}

// NewValidator creates a new Validator.
func NewValidator(
	productRepo iproductrepo.IProductRepository,
	inventoryRepo iinventoryrepo.IInventoryRepository,
) *Validator {
	return &Validator{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// ValidateItems validates every requested item and returns fully-priced line
// items with the unit price snapshotted from the product's current price.
func (v *Validator) ValidateItems(
	ctx context.Context,
	items []order.ItemRequest,
) ([]orderitem.OrderItem, error) {
	slog.InfoContext(ctx, "Validating products and inventory", "item_count", len(items))

	now := time.Now()
	orderItems := make([]orderitem.OrderItem, 0, len(items))

	for _, item := range items {
		product, err := v.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %s: %w", item.ProductID, err)
		}

		if product == nil {
			return nil, errs.NewValidation("product %s not found", item.ProductID)
		}

		if !product.IsActive {
			return nil, errs.NewValidation("product %s is no longer available", product.Name)
		}

		available, err := v.inventoryRepo.GetAvailableStock(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to read stock for product %s: %w", item.ProductID, err)
		}

		if available < item.Quantity {
			return nil, &errs.InsufficientInventoryError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   available,
				Requested:   item.Quantity,
			}
		}

		orderItems = append(orderItems, orderitem.OrderItem{
			ID:             uuid.NewString(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
			SubtotalCents:  product.PriceCents * int64(item.Quantity),
			PriceCurrency:  product.PriceCurrency,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return orderItems, nil
}
