package inventorysvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
)

type fakeInventoryRepo struct {
	stock    map[string]int
	err      error
	attempts []string
}

func (r *fakeInventoryRepo) GetAvailableStock(_ context.Context, productID string) (int, error) {
	return r.stock[productID], nil
}

func (r *fakeInventoryRepo) AtomicDeductStock(
	_ context.Context, productID string, quantity int,
) (bool, error) {
	r.attempts = append(r.attempts, productID)

	if r.err != nil {
		return false, r.err
	}

	if r.stock[productID] < quantity {
		return false, nil
	}
	r.stock[productID] -= quantity

	return true, nil
}

func (r *fakeInventoryRepo) QueryBelowMinStock(_ context.Context, _ int) ([]inventory.Inventory, error) {
	return nil, nil
}

func TestDeductStock(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"prod-1": 5, "prod-2": 2}}

	err := NewInventoryService().DeductStock(context.Background(), repo, []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 3},
		{ProductID: "prod-2", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.stock["prod-1"])
	assert.Equal(t, 0, repo.stock["prod-2"])
}

func TestDeductStockShortage(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"prod-1": 5, "prod-2": 1}}

	err := NewInventoryService().DeductStock(context.Background(), repo, []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 3},
		{ProductID: "prod-2", Quantity: 2},
		{ProductID: "prod-3", Quantity: 1},
	})

	var inventoryErr *errs.InsufficientInventoryError
	require.ErrorAs(t, err, &inventoryErr)
	assert.Equal(t, "prod-2", inventoryErr.ProductID)
	assert.Equal(t, -1, inventoryErr.Available)
	assert.Equal(t, 2, inventoryErr.Requested)

	// Stops at the first shortage; the transaction rollback undoes the rest.
	assert.Equal(t, []string{"prod-1", "prod-2"}, repo.attempts)
}

func TestDeductStockRepositoryError(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &fakeInventoryRepo{err: repoErr}

	err := NewInventoryService().DeductStock(context.Background(), repo, []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 1},
	})

	require.ErrorIs(t, err, repoErr)

	var inventoryErr *errs.InsufficientInventoryError
	assert.False(t, errors.As(err, &inventoryErr))
}
