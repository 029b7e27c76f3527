package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id             string    `db:"id"`
	OrderId        string    `db:"order_id"`
	ProductId      string    `db:"product_id"`
	ProductName    string    `db:"product_name"`
	Quantity       int       `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	SubtotalCents  int64     `db:"subtotal_cents"`
	PriceCurrency  string    `db:"price_currency"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(oi.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ID:             oi.Id,
		OrderID:        oi.OrderId,
		ProductID:      oi.ProductId,
		ProductName:    oi.ProductName,
		Quantity:       oi.Quantity,
		UnitPriceCents: oi.UnitPriceCents,
		SubtotalCents:  oi.SubtotalCents,
		PriceCurrency:  cur,
		CreatedAt:      oi.CreatedAt,
		UpdatedAt:      oi.UpdatedAt,
	}, nil
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert writes all line items of an order in one statement.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) error {
	if len(items) == 0 {
		return nil
	}

	query := r.sb.
		Insert("order_items").
		Columns(
			"id",
			"order_id",
			"product_id",
			"product_name",
			"quantity",
			"unit_price_cents",
			"subtotal_cents",
			"price_currency",
			"created_at",
			"updated_at",
		)

	for _, item := range items {
		query = query.Values(
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPriceCents,
			item.SubtotalCents,
			item.PriceCurrency.String(),
			item.CreatedAt,
			item.UpdatedAt,
		)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to bulk insert order items: %w", err)
	}

	return nil
}

// QueryByOrderIds retrieves line items belonging to the given orders.
func (r *PostgresOrderItemRepository) QueryByOrderIds(
	ctx context.Context,
	orderIds []string,
) ([]orderitem.OrderItem, error) {
	if len(orderIds) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql, args, err := r.sb.
		Select(
			"id",
			"order_id",
			"product_id",
			"product_name",
			"quantity",
			"unit_price_cents",
			"subtotal_cents",
			"price_currency",
			"created_at",
			"updated_at",
		).
		From("order_items").
		Where(sq.Eq{"order_id": orderIds}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.Quantity,
			&dal.UnitPriceCents,
			&dal.SubtotalCents,
			&dal.PriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
