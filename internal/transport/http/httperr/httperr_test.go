package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurdin/shop-svc/internal/service/errs"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "validation error",
			err:      errs.NewValidation("shipping address is required"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unsupported payment method",
			err:      &errs.UnsupportedPaymentMethodError{Method: "BITCOIN"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "payment failed",
			err:      &errs.PaymentFailedError{Reason: "invalid card details"},
			expected: http.StatusPaymentRequired,
		},
		{
			name:     "insufficient inventory",
			err:      &errs.InsufficientInventoryError{ProductID: "prod-1", Requested: 2},
			expected: http.StatusConflict,
		},
		{
			name:     "wrapped pipeline error",
			err:      fmt.Errorf("failed to place order: %w", &errs.PaymentFailedError{}),
			expected: http.StatusPaymentRequired,
		},
		{
			name:     "unrecognized error",
			err:      errors.New("connection reset"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.err))
		})
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, errs.NewValidation("quantity must be greater than 0"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "quantity must be greater than 0", body["error"])
}

func TestWriteHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "password")
}
