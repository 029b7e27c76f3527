package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/service/models/payment"
)

// PaymentDal represents payment data access layer model.
type PaymentDal struct {
	Id            string     `db:"id"`
	OrderId       string     `db:"order_id"`
	AmountCents   int64      `db:"amount_cents"`
	Method        string     `db:"method"`
	Status        string     `db:"status"`
	TransactionId *string    `db:"transaction_id"`
	FailureReason *string    `db:"failure_reason"`
	ProcessedAt   *time.Time `db:"processed_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

// ToModel converts PaymentDal to service layer Payment model.
func (p *PaymentDal) ToModel() *payment.Payment {
	model := &payment.Payment{
		ID:          p.Id,
		OrderID:     p.OrderId,
		AmountCents: p.AmountCents,
		Method:      payment.Method(p.Method),
		Status:      payment.Status(p.Status),
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
	}

	if p.TransactionId != nil {
		model.TransactionID = *p.TransactionId
	}
	if p.FailureReason != nil {
		model.FailureReason = *p.FailureReason
	}

	return model
}

// PaymentDalFromModel converts service layer Payment model to PaymentDal.
func PaymentDalFromModel(p *payment.Payment) *PaymentDal {
	dal := &PaymentDal{
		Id:          p.ID,
		OrderId:     p.OrderID,
		AmountCents: p.AmountCents,
		Method:      p.Method.String(),
		Status:      p.Status.String(),
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
	}

	if p.TransactionID != "" {
		dal.TransactionId = &p.TransactionID
	}
	if p.FailureReason != "" {
		dal.FailureReason = &p.FailureReason
	}

	return dal
}

// PostgresPaymentRepository represents a Postgres payment repository.
type PostgresPaymentRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresPaymentRepository creates a new Postgres payment repository.
func NewPostgresPaymentRepository(conn postgres.GenericConn) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert writes a payment record.
func (r *PostgresPaymentRepository) Insert(ctx context.Context, p payment.Payment) error {
	dal := PaymentDalFromModel(&p)

	sql, args, err := r.sb.
		Insert("payments").
		Columns(
			"id",
			"order_id",
			"amount_cents",
			"method",
			"status",
			"transaction_id",
			"failure_reason",
			"processed_at",
			"created_at",
		).
		Values(
			dal.Id,
			dal.OrderId,
			dal.AmountCents,
			dal.Method,
			dal.Status,
			dal.TransactionId,
			dal.FailureReason,
			dal.ProcessedAt,
			dal.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// QueryByOrderIds retrieves payments belonging to the given orders.
func (r *PostgresPaymentRepository) QueryByOrderIds(
	ctx context.Context,
	orderIds []string,
) ([]payment.Payment, error) {
	if len(orderIds) == 0 {
		return []payment.Payment{}, nil
	}

	sql, args, err := r.sb.
		Select(
			"id",
			"order_id",
			"amount_cents",
			"method",
			"status",
			"transaction_id",
			"failure_reason",
			"processed_at",
			"created_at",
		).
		From("payments").
		Where(sq.Eq{"order_id": orderIds}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var result []payment.Payment
	for rows.Next() {
		var dal PaymentDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.AmountCents,
			&dal.Method,
			&dal.Status,
			&dal.TransactionId,
			&dal.FailureReason,
			&dal.ProcessedAt,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
