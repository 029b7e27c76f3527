package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vkurdin/shop-svc/internal/service/errs"
)

// Status maps a pipeline error to its HTTP status code. Every error kind of
// the order pipeline gets a distinct, stable status; anything unrecognized is
// an infrastructure failure.
func Status(err error) int {
	var (
		validationErr  *errs.ValidationError
		inventoryErr   *errs.InsufficientInventoryError
		paymentErr     *errs.PaymentFailedError
		unsupportedErr *errs.UnsupportedPaymentMethodError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		return http.StatusBadRequest
	case errors.As(err, &paymentErr):
		return http.StatusPaymentRequired
	case errors.As(err, &inventoryErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as a JSON error envelope. Infrastructure errors are
// logged with full context but surfaced generically.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "error", err)
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": message}); encErr != nil {
		slog.Error("Error writing error response", "error", encErr)
	}
}
