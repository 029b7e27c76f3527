package ordersvc

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iinventoryrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/inotifier"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iorderitemrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iorderrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/ipaymentrepo"
	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/dal/uow"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
	"github.com/vkurdin/shop-svc/internal/service/models/payment"
	"github.com/vkurdin/shop-svc/internal/service/services/inventorysvc"
	"github.com/vkurdin/shop-svc/internal/service/services/orderfactory"
)

const defaultTxTimeoutSeconds = 5

// unitOfWork is the transactional boundary of order placement: stock
// deduction and the order/item/payment writes happen between Begin and
// Commit, or not at all.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	PaymentRepository() ipaymentrepo.IPaymentRepository
	InventoryRepository() iinventoryrepo.IInventoryRepository
}

// validator builds priced line items from the placement request.
type validator interface {
	ValidateItems(ctx context.Context, items []order.ItemRequest) ([]orderitem.OrderItem, error)
}

// paymentGateway charges a payment method outside the transaction.
type paymentGateway interface {
	ProcessPayment(
		ctx context.Context,
		ord *order.Order,
		method string,
		details map[string]string,
	) (payment.Payment, error)
}

// stockDeductor performs the atomic stock deduction inside the transaction.
type stockDeductor interface {
	DeductStock(
		ctx context.Context,
		repo iinventoryrepo.IInventoryRepository,
		items []order.ItemRequest,
	) error
}

// OrderService orchestrates order placement and the order read paths.
type OrderService struct {
	pgClient  *postgres.Client
	validator validator
	factory   *orderfactory.Factory
	payments  paymentGateway
	inventory stockDeductor
	notifier  inotifier.INotifier
	newUOW    func() unitOfWork
	txTimeout time.Duration
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	txTimeoutSeconds := viper.GetInt("postgres.tx_timeout_seconds")
	if txTimeoutSeconds == 0 {
		txTimeoutSeconds = defaultTxTimeoutSeconds
	}

	s := &OrderService{
		factory:   orderfactory.NewFactory(),
		inventory: inventorysvc.NewInventoryService(),
		txTimeout: time.Duration(txTimeoutSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithValidator sets the order validator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithValidator(v validator) option {
	return func(s *OrderService) {
		s.validator = v
	}
}

// WithPaymentGateway sets the payment gateway.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentGateway(g paymentGateway) option {
	return func(s *OrderService) {
		s.payments = g
	}
}

// WithStockDeductor sets the inventory deduction service.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStockDeductor(d stockDeductor) option {
	return func(s *OrderService) {
		s.inventory = d
	}
}

// WithNotifier sets the notification sender.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n inotifier.INotifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = f
	}
}

// GetOrders retrieves orders matching the filter, with their line items and
// payment records attached.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]string, len(orders))
	for i, o := range orders {
		orderIds[i] = o.ID
	}

	items, err := work.OrderItemRepository().QueryByOrderIds(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	payments, err := work.PaymentRepository().QueryByOrderIds(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
		for j := range payments {
			if payments[j].OrderID == orders[i].ID {
				orders[i].Payment = &payments[j]

				break
			}
		}
	}

	return orders, nil
}

// GetOrderByID retrieves a single order. Returns (nil, nil) when not found.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*order.Order, error) {
	orders, err := s.GetOrders(ctx, order.QueryOrdersModel{Ids: []string{id}})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	return &orders[0], nil
}
