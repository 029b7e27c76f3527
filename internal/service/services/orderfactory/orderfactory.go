package orderfactory

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

const orderNumberSuffixLen = 5

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Factory builds order aggregates in memory. Pure construction: no I/O.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewOrder constructs a PENDING order from the placement request, the
// validated line items, and the computed totals. The generated order id is
// backfilled onto every line item.
func (f *Factory) NewOrder(
	req order.PlaceOrderRequest,
	items []orderitem.OrderItem,
	totals order.Totals,
) *order.Order {
	orderID := uuid.NewString()
	now := time.Now()

	for i := range items {
		items[i].OrderID = orderID
	}

	return &order.Order{
		ID:              orderID,
		UserID:          req.UserID,
		OrderNumber:     GenerateOrderNumber(),
		Status:          order.StatusPending,
		Totals:          totals,
		Currency:        currency.CurrencyUSD,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// GenerateOrderNumber returns a human-readable order number of the form
// ORD-<base36 unix millis>-<5 random base36 chars>, uppercased. The random
// suffix is not collision-free; the unique index on orders.order_number is
// the real guarantee.
func GenerateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, orderNumberSuffixLen)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}

	return "ORD-" + timestamp + "-" + string(suffix)
}
