package paymentsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/currency"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/payment"
)

// Result is the outcome reported by a payment processor.
type Result struct {
	Success       bool
	TransactionID string
	ErrorMessage  string
}

// Processor charges (and refunds) a specific payment method.
type Processor interface {
	ProcessPayment(
		ctx context.Context,
		amountCents int64,
		cur currency.Currency,
		details map[string]string,
	) (Result, error)
	RefundPayment(ctx context.Context, transactionID string, amountCents int64) (Result, error)
}

// Gateway dispatches to a processor selected by payment method. It runs
// strictly outside the persistence transaction: charging a card must not hold
// a database transaction open across a network round trip.
type Gateway struct {
	processors map[payment.Method]Processor
}

// option is a function that configures the Gateway.
type option func(*Gateway)

// NewGateway creates a Gateway with the credit card and PayPal processors
// registered by default.
func NewGateway(opts ...option) *Gateway {
	g := &Gateway{
		processors: map[payment.Method]Processor{
			payment.MethodCreditCard: NewCreditCardProcessor(),
			payment.MethodPayPal:     NewPayPalProcessor(),
		},
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithProcessor registers (or replaces) the processor for a method.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProcessor(method payment.Method, p Processor) option {
	return func(g *Gateway) {
		g.processors[method] = p
	}
}

// ProcessPayment charges the order total through the processor for the given
// method. A declined or errored charge yields a FAILED payment, not an error:
// payment failure is a data outcome here. The only error returned is an
// unrecognized method.
func (g *Gateway) ProcessPayment(
	ctx context.Context,
	ord *order.Order,
	method string,
	details map[string]string,
) (payment.Payment, error) {
	parsed, err := payment.ParseMethod(method)
	if err != nil {
		return payment.Payment{}, &errs.UnsupportedPaymentMethodError{Method: method}
	}

	processor, ok := g.processors[parsed]
	if !ok {
		return payment.Payment{}, &errs.UnsupportedPaymentMethodError{Method: method}
	}

	slog.InfoContext(ctx, "Processing payment",
		"order_id", ord.ID,
		"method", parsed.String(),
		"amount_cents", ord.Totals.TotalCents,
	)

	pay := payment.Payment{
		ID:          uuid.NewString(),
		OrderID:     ord.ID,
		AmountCents: ord.Totals.TotalCents,
		Method:      parsed,
		Status:      payment.StatusPending,
		CreatedAt:   time.Now(),
	}

	result, err := processor.ProcessPayment(ctx, ord.Totals.TotalCents, ord.Currency, details)
	if err != nil {
		slog.ErrorContext(ctx, "Payment processing error", "order_id", ord.ID, "error", err)
		pay.Status = payment.StatusFailed
		pay.FailureReason = err.Error()

		return pay, nil
	}

	if !result.Success {
		pay.Status = payment.StatusFailed
		pay.FailureReason = result.ErrorMessage
		if pay.FailureReason == "" {
			pay.FailureReason = "payment failed without specific error message"
		}

		return pay, nil
	}

	now := time.Now()
	pay.Status = payment.StatusCaptured
	pay.TransactionID = result.TransactionID
	pay.ProcessedAt = &now

	slog.InfoContext(ctx, "Payment captured",
		"order_id", ord.ID,
		"transaction_id", pay.TransactionID,
	)

	return pay, nil
}

// RefundPayment refunds a captured charge through the processor for the given
// method. The order pipeline never calls this: a payment captured before a
// failed commit is reconciled manually through this hook.
func (g *Gateway) RefundPayment(
	ctx context.Context,
	method payment.Method,
	transactionID string,
	amountCents int64,
) (Result, error) {
	processor, ok := g.processors[method]
	if !ok {
		return Result{}, &errs.UnsupportedPaymentMethodError{Method: method.String()}
	}

	return processor.RefundPayment(ctx, transactionID, amountCents)
}
