package iorderrepo

import (
	"context"

	"github.com/vkurdin/shop-svc/internal/service/models/order"
)

// IOrderRepository is the order persistence contract.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) error
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
