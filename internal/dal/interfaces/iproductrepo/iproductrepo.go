package iproductrepo

import (
	"context"

	"github.com/vkurdin/shop-svc/internal/service/models/product"
)

// IProductRepository is the read-only product lookup used by order validation.
// FindByID returns (nil, nil) when the product does not exist.
type IProductRepository interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
}
