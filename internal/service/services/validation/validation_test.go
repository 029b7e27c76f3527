package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/product"
)

type fakeProductRepo struct {
	products map[string]*product.Product
	err      error
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*product.Product, error) {
	if r.err != nil {
		return nil, r.err
	}

	return r.products[id], nil
}

type fakeInventoryRepo struct {
	stock map[string]int
	err   error
}

func (r *fakeInventoryRepo) GetAvailableStock(_ context.Context, productID string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	return r.stock[productID], nil
}

func (r *fakeInventoryRepo) AtomicDeductStock(_ context.Context, _ string, _ int) (bool, error) {
	panic("not used by validation")
}

func (r *fakeInventoryRepo) QueryBelowMinStock(_ context.Context, _ int) ([]inventory.Inventory, error) {
	panic("not used by validation")
}

func newTestValidator(products map[string]*product.Product, stock map[string]int) *Validator {
	return NewValidator(
		&fakeProductRepo{products: products},
		&fakeInventoryRepo{stock: stock},
	)
}

func TestValidateItems(t *testing.T) {
	products := map[string]*product.Product{
		"prod-1": {
			ID:            "prod-1",
			Name:          "Widget",
			PriceCents:    2500,
			PriceCurrency: currency.CurrencyUSD,
			IsActive:      true,
		},
		"prod-2": {
			ID:            "prod-2",
			Name:          "Gadget",
			PriceCents:    999,
			PriceCurrency: currency.CurrencyUSD,
			IsActive:      true,
		},
	}
	stock := map[string]int{"prod-1": 10, "prod-2": 3}

	v := newTestValidator(products, stock)

	items, err := v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, "Widget", items[0].ProductName)
	assert.Equal(t, int64(2500), items[0].UnitPriceCents)
	assert.Equal(t, int64(5000), items[0].SubtotalCents)
	assert.Equal(t, currency.CurrencyUSD, items[0].PriceCurrency)

	assert.Equal(t, int64(999), items[1].UnitPriceCents)
	assert.Equal(t, int64(2997), items[1].SubtotalCents)
}

func TestValidateItemsProductNotFound(t *testing.T) {
	v := newTestValidator(nil, nil)

	_, err := v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "missing", Quantity: 1},
	})

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "missing")
	assert.Contains(t, validationErr.Message, "not found")
}

func TestValidateItemsInactiveProduct(t *testing.T) {
	products := map[string]*product.Product{
		"prod-1": {ID: "prod-1", Name: "Retired Widget", IsActive: false},
	}

	v := newTestValidator(products, nil)

	_, err := v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 1},
	})

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "Retired Widget")
	assert.Contains(t, validationErr.Message, "no longer available")
}

func TestValidateItemsInsufficientStock(t *testing.T) {
	products := map[string]*product.Product{
		"prod-1": {ID: "prod-1", Name: "Widget", PriceCents: 2500, IsActive: true},
	}
	stock := map[string]int{"prod-1": 2}

	v := newTestValidator(products, stock)

	_, err := v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 5},
	})

	var inventoryErr *errs.InsufficientInventoryError
	require.ErrorAs(t, err, &inventoryErr)
	assert.Equal(t, "prod-1", inventoryErr.ProductID)
	assert.Equal(t, "Widget", inventoryErr.ProductName)
	assert.Equal(t, 2, inventoryErr.Available)
	assert.Equal(t, 5, inventoryErr.Requested)
}

func TestValidateItemsRepositoryErrorsWrapped(t *testing.T) {
	repoErr := errors.New("connection reset")

	v := NewValidator(&fakeProductRepo{err: repoErr}, &fakeInventoryRepo{})

	_, err := v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 1},
	})
	require.ErrorIs(t, err, repoErr)

	v = NewValidator(
		&fakeProductRepo{products: map[string]*product.Product{
			"prod-1": {ID: "prod-1", Name: "Widget", IsActive: true},
		}},
		&fakeInventoryRepo{err: repoErr},
	)

	_, err = v.ValidateItems(context.Background(), []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 1},
	})
	require.ErrorIs(t, err, repoErr)
}
