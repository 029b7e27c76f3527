package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

func itemsWithSubtotals(subtotals ...int64) []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, 0, len(subtotals))
	for _, s := range subtotals {
		items = append(items, orderitem.OrderItem{SubtotalCents: s})
	}

	return items
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []orderitem.OrderItem
		expected order.Totals
	}{
		{
			name:  "above free shipping threshold",
			items: itemsWithSubtotals(4000, 6000),
			expected: order.Totals{
				SubtotalCents: 10000,
				TaxCents:      800,
				ShippingCents: 0,
				TotalCents:    10800,
			},
		},
		{
			name:  "below free shipping threshold",
			items: itemsWithSubtotals(2000),
			expected: order.Totals{
				SubtotalCents: 2000,
				TaxCents:      160,
				ShippingCents: 500,
				TotalCents:    2660,
			},
		},
		{
			name:  "exactly at threshold still pays shipping",
			items: itemsWithSubtotals(5000),
			expected: order.Totals{
				SubtotalCents: 5000,
				TaxCents:      400,
				ShippingCents: 500,
				TotalCents:    5900,
			},
		},
		{
			name:  "one cent above threshold ships free",
			items: itemsWithSubtotals(5001),
			expected: order.Totals{
				SubtotalCents: 5001,
				TaxCents:      400,
				ShippingCents: 0,
				TotalCents:    5401,
			},
		},
		{
			name:  "empty order",
			items: nil,
			expected: order.Totals{
				SubtotalCents: 0,
				TaxCents:      0,
				ShippingCents: 500,
				TotalCents:    500,
			},
		},
		{
			name:  "tiny subtotal rounds tax down to zero",
			items: itemsWithSubtotals(6),
			expected: order.Totals{
				SubtotalCents: 6,
				TaxCents:      0,
				ShippingCents: 500,
				TotalCents:    506,
			},
		},
		{
			name:  "fractional tax rounds up",
			items: itemsWithSubtotals(7),
			expected: order.Totals{
				SubtotalCents: 7,
				TaxCents:      1,
				ShippingCents: 500,
				TotalCents:    508,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateTotals(tt.items)

			assert.Equal(t, tt.expected, totals)
			assert.Equal(
				t,
				totals.SubtotalCents+totals.TaxCents+totals.ShippingCents,
				totals.TotalCents,
			)
		})
	}
}

func TestCalculateTotalsDeterministic(t *testing.T) {
	items := itemsWithSubtotals(1234, 4321)

	first := CalculateTotals(items)
	second := CalculateTotals(items)

	assert.Equal(t, first, second)
}
