package paymentsvc

import (
	"context"
	"log/slog"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
)

// PayPalProcessor simulates a PayPal integration. Credentials are checked for
// presence; the charge itself always succeeds with valid credentials.
type PayPalProcessor struct{}

// NewPayPalProcessor creates a new PayPalProcessor.
func NewPayPalProcessor() *PayPalProcessor {
	return &PayPalProcessor{}
}

// ProcessPayment checks the PayPal credentials and returns an opaque
// transaction id on success.
func (p *PayPalProcessor) ProcessPayment(
	ctx context.Context,
	amountCents int64,
	cur currency.Currency,
	details map[string]string,
) (Result, error) {
	slog.InfoContext(ctx, "Processing PayPal payment",
		"amount_cents", amountCents,
		"currency", cur.String(),
	)

	if details["paypalEmail"] == "" || details["paypalToken"] == "" {
		return Result{Success: false, ErrorMessage: "invalid PayPal credentials"}, nil
	}

	return Result{
		Success:       true,
		TransactionID: newTransactionID("PP"),
	}, nil
}

// RefundPayment reverses a captured charge.
func (p *PayPalProcessor) RefundPayment(
	ctx context.Context,
	transactionID string,
	amountCents int64,
) (Result, error) {
	slog.InfoContext(ctx, "Processing PayPal refund",
		"transaction_id", transactionID,
		"amount_cents", amountCents,
	)

	return Result{
		Success:       true,
		TransactionID: "REFUND-" + transactionID,
	}, nil
}
