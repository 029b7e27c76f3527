package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrderByID(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the get-order-by-id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderID")

	found, err := service.GetOrderByID(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	if found == nil {
		http.Error(w, "order not found", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(found); err != nil {
		slog.Error("Error writing response for get order", "error", err)
	}
}
