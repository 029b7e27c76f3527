package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error)
}

// PlaceOrder handles the order placement request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req order.PlaceOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), req)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error placing order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(placed); err != nil {
		slog.Error("Error writing response for place order", "error", err)
	}
}
