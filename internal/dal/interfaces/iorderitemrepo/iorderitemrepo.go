package iorderitemrepo

import (
	"context"

	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

// IOrderItemRepository is the order line item persistence contract.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) error
	QueryByOrderIds(ctx context.Context, orderIds []string) ([]orderitem.OrderItem, error)
}
