package order

import (
	"errors"
	"time"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
	"github.com/vkurdin/shop-svc/internal/service/models/payment"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Totals holds the priced breakdown of an order in minor currency units.
type Totals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Order represents an order aggregate. It is built in memory by the order
// factory and persisted exactly once, with status CONFIRMED, by the
// place-order transaction.
type Order struct {
	ID              string                `json:"id"`
	UserID          string                `json:"userId"`
	OrderNumber     string                `json:"orderNumber"`
	Status          Status                `json:"status"`
	Totals          Totals                `json:"totals"`
	Currency        currency.Currency     `json:"currency"`
	ShippingAddress string                `json:"shippingAddress"`
	BillingAddress  string                `json:"billingAddress"`
	Items           []orderitem.OrderItem `json:"items"`
	Payment         *payment.Payment      `json:"payment,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ItemRequest is a requested product/quantity pair from the placement request.
type ItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the input of the place-order pipeline.
type PlaceOrderRequest struct {
	UserID          string            `json:"userId"`
	Items           []ItemRequest     `json:"items"`
	ShippingAddress string            `json:"shippingAddress"`
	BillingAddress  string            `json:"billingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	PaymentDetails  map[string]string `json:"paymentDetails"`
}
