package paymentsvc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/vkurdin/shop-svc/internal/service/models/currency"
)

const transactionSuffixLen = 9

const alnumAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// CreditCardProcessor simulates a credit card acquirer. Details are validated
// locally; the charge itself always succeeds for well-formed cards.
type CreditCardProcessor struct{}

// NewCreditCardProcessor creates a new CreditCardProcessor.
func NewCreditCardProcessor() *CreditCardProcessor {
	return &CreditCardProcessor{}
}

// ProcessPayment validates the card details and returns an opaque transaction
// id on success.
func (p *CreditCardProcessor) ProcessPayment(
	ctx context.Context,
	amountCents int64,
	cur currency.Currency,
	details map[string]string,
) (Result, error) {
	slog.InfoContext(ctx, "Processing credit card payment",
		"amount_cents", amountCents,
		"currency", cur.String(),
	)

	if !validCard(details["cardNumber"], details["cvv"], details["expiryDate"]) {
		return Result{Success: false, ErrorMessage: "invalid card details"}, nil
	}

	return Result{
		Success:       true,
		TransactionID: newTransactionID("CC"),
	}, nil
}

// RefundPayment reverses a captured charge.
func (p *CreditCardProcessor) RefundPayment(
	ctx context.Context,
	transactionID string,
	amountCents int64,
) (Result, error) {
	slog.InfoContext(ctx, "Processing credit card refund",
		"transaction_id", transactionID,
		"amount_cents", amountCents,
	)

	return Result{
		Success:       true,
		TransactionID: "REFUND-" + transactionID,
	}, nil
}

func validCard(cardNumber, cvv, expiryDate string) bool {
	return len(cardNumber) == 16 && len(cvv) == 3 && expiryDate != ""
}

func newTransactionID(prefix string) string {
	suffix := make([]byte, transactionSuffixLen)
	for i := range suffix {
		suffix[i] = alnumAlphabet[rand.Intn(len(alnumAlphabet))]
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
