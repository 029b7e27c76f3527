package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// parseStrSlice parses a comma-separated query parameter.
func parseStrSlice(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	filter := order.QueryOrdersModel{
		Ids:          parseStrSlice(query.Get("ids")),
		UserIds:      parseStrSlice(query.Get("userIds")),
		OrderNumbers: parseStrSlice(query.Get("orderNumbers")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
