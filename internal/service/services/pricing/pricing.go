package pricing

import (
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

const (
	// taxRateBasisPoints is the flat 8% tax rate expressed in basis points so
	// the tax stays in integer minor units.
	taxRateBasisPoints = 800

	// FreeShippingThresholdCents waives shipping when the subtotal strictly
	// exceeds it.
	FreeShippingThresholdCents = 5000

	// FlatShippingCents is charged below the free-shipping threshold.
	FlatShippingCents = 500
)

// CalculateTotals prices a list of line items. Pure function: no I/O, same
// input always yields the same totals. An empty list prices to subtotal 0,
// tax 0, and the flat shipping fee.
func CalculateTotals(items []orderitem.OrderItem) order.Totals {
	subtotal := calculateSubtotal(items)
	tax := calculateTax(subtotal)
	shipping := calculateShipping(subtotal)

	return order.Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		ShippingCents: shipping,
		TotalCents:    subtotal + tax + shipping,
	}
}

func calculateSubtotal(items []orderitem.OrderItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.SubtotalCents
	}

	return sum
}

// calculateTax rounds half-up to the nearest minor unit.
func calculateTax(subtotalCents int64) int64 {
	return (subtotalCents*taxRateBasisPoints + 5000) / 10000
}

func calculateShipping(subtotalCents int64) int64 {
	if subtotalCents > FreeShippingThresholdCents {
		return 0
	}

	return FlatShippingCents
}
