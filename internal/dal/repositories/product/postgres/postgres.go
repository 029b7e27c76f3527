package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id            string    `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	Sku           string    `db:"sku"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		Sku:           p.Sku,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByID retrieves a product by id. Returns (nil, nil) when absent.
func (r *PostgresProductRepository) FindByID(
	ctx context.Context,
	id string,
) (*product.Product, error) {
	sql, args, err := r.sb.
		Select(
			"id",
			"name",
			"description",
			"price_cents",
			"price_currency",
			"sku",
			"is_active",
			"created_at",
			"updated_at",
		).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.Sku,
		&dal.IsActive,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
	}

	return model, nil
}
