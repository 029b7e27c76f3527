package payment

import (
	"errors"
	"time"
)

// Method is the payment method selected by the customer.
type Method string

const (
	MethodCreditCard Method = "CREDIT_CARD"
	MethodPayPal     Method = "PAYPAL"
)

var ErrInvalidMethod = errors.New("invalid payment method")

func (m Method) String() string {
	return string(m)
}

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCreditCard, MethodPayPal:
		return Method(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

// Status is the lifecycle state of a payment.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAuthorized Status = "AUTHORIZED"
	StatusCaptured   Status = "CAPTURED"
	StatusFailed     Status = "FAILED"
	StatusRefunded   Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

// Payment records the outcome of charging a payment method for an order.
// It is created PENDING and moved to CAPTURED or FAILED by the payment
// gateway, immutable thereafter.
type Payment struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"orderId"`
	AmountCents   int64      `json:"amountCents"`
	Method        Method     `json:"method"`
	Status        Status     `json:"status"`
	TransactionID string     `json:"transactionId,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
