package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              string    `db:"id"`
	UserId          string    `db:"user_id"`
	OrderNumber     string    `db:"order_number"`
	Status          string    `db:"status"`
	SubtotalCents   int64     `db:"subtotal_cents"`
	TaxCents        int64     `db:"tax_cents"`
	ShippingCents   int64     `db:"shipping_cents"`
	TotalCents      int64     `db:"total_cents"`
	Currency        string    `db:"currency"`
	ShippingAddress string    `db:"shipping_address"`
	BillingAddress  string    `db:"billing_address"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:          o.Id,
		UserID:      o.UserId,
		OrderNumber: o.OrderNumber,
		Status:      status,
		Totals: order.Totals{
			SubtotalCents: o.SubtotalCents,
			TaxCents:      o.TaxCents,
			ShippingCents: o.ShippingCents,
			TotalCents:    o.TotalCents,
		},
		Currency:        cur,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Items:           []orderitem.OrderItem{}, // Populated separately
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:              o.ID,
		UserId:          o.UserID,
		OrderNumber:     o.OrderNumber,
		Status:          o.Status.String(),
		SubtotalCents:   o.Totals.SubtotalCents,
		TaxCents:        o.Totals.TaxCents,
		ShippingCents:   o.Totals.ShippingCents,
		TotalCents:      o.Totals.TotalCents,
		Currency:        o.Currency.String(),
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert writes a single order row. The order number carries a unique index;
// the rare generated collision surfaces here as a storage error.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) error {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"id",
			"user_id",
			"order_number",
			"status",
			"subtotal_cents",
			"tax_cents",
			"shipping_cents",
			"total_cents",
			"currency",
			"shipping_address",
			"billing_address",
			"created_at",
			"updated_at",
		).
		Values(
			dal.Id,
			dal.UserId,
			dal.OrderNumber,
			dal.Status,
			dal.SubtotalCents,
			dal.TaxCents,
			dal.ShippingCents,
			dal.TotalCents,
			dal.Currency,
			dal.ShippingAddress,
			dal.BillingAddress,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(
			"id",
			"user_id",
			"order_number",
			"status",
			"subtotal_cents",
			"tax_cents",
			"shipping_cents",
			"total_cents",
			"currency",
			"shipping_address",
			"billing_address",
			"created_at",
			"updated_at",
		).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if len(filter.OrderNumbers) > 0 {
		query = query.Where(sq.Eq{"order_number": filter.OrderNumbers})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.OrderNumber,
			&dal.Status,
			&dal.SubtotalCents,
			&dal.TaxCents,
			&dal.ShippingCents,
			&dal.TotalCents,
			&dal.Currency,
			&dal.ShippingAddress,
			&dal.BillingAddress,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
