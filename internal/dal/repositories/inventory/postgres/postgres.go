package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
)

// InventoryDal represents inventory data access layer model.
type InventoryDal struct {
	Id            string     `db:"id"`
	ProductId     string     `db:"product_id"`
	Quantity      int        `db:"quantity"`
	MinStockLevel int        `db:"min_stock_level"`
	LastRestockAt *time.Time `db:"last_restock_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ToModel converts InventoryDal to service layer Inventory model.
func (i *InventoryDal) ToModel() *inventory.Inventory {
	return &inventory.Inventory{
		ID:            i.Id,
		ProductID:     i.ProductId,
		Quantity:      i.Quantity,
		MinStockLevel: i.MinStockLevel,
		LastRestockAt: i.LastRestockAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// PostgresInventoryRepository represents a Postgres inventory repository.
type PostgresInventoryRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresInventoryRepository creates a new Postgres inventory repository.
func NewPostgresInventoryRepository(conn postgres.GenericConn) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetAvailableStock returns the current available quantity for a product.
// Missing inventory rows read as zero stock.
func (r *PostgresInventoryRepository) GetAvailableStock(
	ctx context.Context,
	productID string,
) (int, error) {
	sql, args, err := r.sb.
		Select("COALESCE(SUM(quantity), 0)").
		From("inventory").
		Where(sq.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var quantity int
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&quantity); err != nil {
		return 0, fmt.Errorf("failed to query available stock: %w", err)
	}

	return quantity, nil
}

// AtomicDeductStock decrements quantity by the requested amount in a single
// conditional UPDATE guarded by quantity >= requested. Returns false when no
// row matched, i.e. stock was insufficient at the moment of the update. This
// is the authoritative oversell guard; there is deliberately no
// read-modify-write here.
func (r *PostgresInventoryRepository) AtomicDeductStock(
	ctx context.Context,
	productID string,
	quantity int,
) (bool, error) {
	sql, args, err := r.sb.
		Update("inventory").
		Set("quantity", sq.Expr("quantity - ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"product_id": productID}).
		Where(sq.GtOrEq{"quantity": quantity}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to deduct stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// QueryBelowMinStock retrieves inventory rows whose quantity has fallen below
// their minimum stock level, ordered by how deep the shortage is.
func (r *PostgresInventoryRepository) QueryBelowMinStock(
	ctx context.Context,
	limit int,
) ([]inventory.Inventory, error) {
	query := r.sb.
		Select(
			"id",
			"product_id",
			"quantity",
			"min_stock_level",
			"last_restock_at",
			"created_at",
			"updated_at",
		).
		From("inventory").
		Where(sq.Expr("quantity < min_stock_level")).
		OrderBy("min_stock_level - quantity DESC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var result []inventory.Inventory
	for rows.Next() {
		var dal InventoryDal
		err := rows.Scan(
			&dal.Id,
			&dal.ProductId,
			&dal.Quantity,
			&dal.MinStockLevel,
			&dal.LastRestockAt,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
