package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iinventoryrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iorderitemrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iorderrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/ipaymentrepo"
	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	inventoryrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/inventory/postgres"
	orderrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/orderitem/postgres"
	paymentrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/payment/postgres"
)

// unitOfWork scopes the order, order item, payment, and inventory
// repositories to one Postgres transaction. Before Begin the repositories run
// against the pool; after Begin they are rebuilt on the transaction, so every
// operation between Begin and Commit is atomic.
type unitOfWork struct {
	pgClient *postgres.Client
	tx       pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	paymentRepo   ipaymentrepo.IPaymentRepository
	inventoryRepo iinventoryrepo.IInventoryRepository
}

// NewUnitOfWork creates a unit of work with pool-scoped repositories.
func NewUnitOfWork(pgClient *postgres.Client) *unitOfWork {
	pool := pgClient.Pool()

	return &unitOfWork{
		pgClient:      pgClient,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		paymentRepo:   paymentrepo.NewPostgresPaymentRepository(pool),
		inventoryRepo: inventoryrepo.NewPostgresInventoryRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) PaymentRepository() ipaymentrepo.IPaymentRepository {
	return u.paymentRepo
}

func (u *unitOfWork) InventoryRepository() iinventoryrepo.IInventoryRepository {
	return u.inventoryRepo
}

// Begin opens a transaction and rebinds all repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pgClient.Pool().BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.paymentRepo = paymentrepo.NewPostgresPaymentRepository(tx)
	u.inventoryRepo = inventoryrepo.NewPostgresInventoryRepository(tx)

	return nil
}

// Commit commits the open transaction. No-op when Begin was never called.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls back the open transaction. No-op when Begin was never called.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
