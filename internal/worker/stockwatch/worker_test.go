package stockwatch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
)

type fakeInventoryRepo struct {
	low []inventory.Inventory
	err error
}

func (r *fakeInventoryRepo) GetAvailableStock(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (r *fakeInventoryRepo) AtomicDeductStock(_ context.Context, _ string, _ int) (bool, error) {
	return false, nil
}

func (r *fakeInventoryRepo) QueryBelowMinStock(
	_ context.Context, _ int,
) ([]inventory.Inventory, error) {
	return r.low, r.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, _, _, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)

	return n.err
}

func TestCheckLevelsAlertsPerProduct(t *testing.T) {
	repo := &fakeInventoryRepo{low: []inventory.Inventory{
		{ProductID: "prod-1", Quantity: 1, MinStockLevel: 5},
		{ProductID: "prod-2", Quantity: 0, MinStockLevel: 3},
	}}
	notifier := &recordingNotifier{}

	w := NewWorker(repo, notifier)
	w.checkLevels(context.Background())

	sort.Strings(notifier.subjects)
	require.Len(t, notifier.subjects, 2)
	assert.Equal(t, "Low stock: product prod-1", notifier.subjects[0])
	assert.Equal(t, "Low stock: product prod-2", notifier.subjects[1])
}

func TestCheckLevelsNothingLow(t *testing.T) {
	notifier := &recordingNotifier{}

	w := NewWorker(&fakeInventoryRepo{}, notifier)
	w.checkLevels(context.Background())

	assert.Empty(t, notifier.subjects)
}

func TestCheckLevelsQueryErrorIsSwallowed(t *testing.T) {
	repo := &fakeInventoryRepo{err: errors.New("connection reset")}
	notifier := &recordingNotifier{}

	w := NewWorker(repo, notifier)
	w.checkLevels(context.Background())

	assert.Empty(t, notifier.subjects)
}

func TestCheckLevelsPublishErrorIsSwallowed(t *testing.T) {
	repo := &fakeInventoryRepo{low: []inventory.Inventory{
		{ProductID: "prod-1", Quantity: 1, MinStockLevel: 5},
	}}
	notifier := &recordingNotifier{err: errors.New("channel closed")}

	w := NewWorker(repo, notifier)
	w.checkLevels(context.Background())

	assert.Len(t, notifier.subjects, 1)
}
