package orderitem

import (
	"time"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
)

// OrderItem represents a single line of an order. The product name and unit
// price are snapshotted from the product at validation time.
type OrderItem struct {
	ID             string            `json:"id"`
	OrderID        string            `json:"orderId"`
	ProductID      string            `json:"productId"`
	ProductName    string            `json:"productName"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int64             `json:"unitPriceCents"`
	SubtotalCents  int64             `json:"subtotalCents"`
	PriceCurrency  currency.Currency `json:"priceCurrency"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
