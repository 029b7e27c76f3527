// Package errs defines the error taxonomy of the order pipeline. Every error
// here is client-facing and mapped to a distinct HTTP status at the transport
// boundary; infrastructure errors pass through wrapped but untyped.
package errs

import "fmt"

// ValidationError signals a malformed request or a referenced entity that is
// not eligible for ordering (missing or inactive product).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientInventoryError signals that stock was unavailable, either at the
// advisory pre-check or at the authoritative atomic decrement. Available is -1
// when the shortage was detected at decrement time and the current quantity is
// unknown.
type InsufficientInventoryError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientInventoryError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	if e.Available < 0 {
		return fmt.Sprintf("insufficient stock for product %s, requested: %d", name, e.Requested)
	}

	return fmt.Sprintf(
		"insufficient inventory for %s, available: %d, requested: %d",
		name, e.Available, e.Requested,
	)
}

// PaymentFailedError signals that the payment processor declined or errored.
// The order placement never opens a transaction when this is raised.
type PaymentFailedError struct {
	Reason string
}

func (e *PaymentFailedError) Error() string {
	if e.Reason == "" {
		return "payment was not successful"
	}

	return "payment was not successful: " + e.Reason
}

// UnsupportedPaymentMethodError signals an unrecognized payment method.
type UnsupportedPaymentMethodError struct {
	Method string
}

func (e *UnsupportedPaymentMethodError) Error() string {
	return "unsupported payment method: " + e.Method
}
