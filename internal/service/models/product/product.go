package product

import (
	"time"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
)

// Product represents a catalog product as seen by the order pipeline.
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Sku           string            `json:"sku"`
	IsActive      bool              `json:"isActive"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
