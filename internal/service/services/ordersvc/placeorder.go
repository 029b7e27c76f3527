package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vkurdin/shop-svc/internal/service/errs"
	"github.com/vkurdin/shop-svc/internal/service/models/order"
	"github.com/vkurdin/shop-svc/internal/service/models/payment"
	"github.com/vkurdin/shop-svc/internal/service/services/pricing"
)

const maxQuantityPerItem = 100

// PlaceOrder runs the order placement pipeline:
//
//	validate -> price -> build -> charge -> {deduct stock; persist} -> notify
//
// Validation through charging run sequentially with no transaction open. Only
// when the payment is captured does one transaction open, in which the atomic
// stock deduction and all order writes either commit together or roll back
// together. The confirmation notification is dispatched after commit in a
// detached goroutine and never affects the result.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	req order.PlaceOrderRequest,
) (*order.Order, error) {
	slog.InfoContext(ctx, "Starting order placement", "user_id", req.UserID)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	items, err := s.validator.ValidateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totals := pricing.CalculateTotals(items)

	ord := s.factory.NewOrder(req, items, totals)

	pay, err := s.payments.ProcessPayment(ctx, ord, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		return nil, err
	}
	ord.Payment = &pay

	if pay.Status != payment.StatusCaptured {
		return nil, &errs.PaymentFailedError{Reason: pay.FailureReason}
	}

	ord.Status = order.StatusConfirmed

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	work := s.newUOW()
	if err := work.Begin(txCtx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.persistOrder(txCtx, work, ord, req.Items); err != nil {
		if rbErr := work.Rollback(txCtx); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", "order_id", ord.ID, "error", rbErr)
		}

		return nil, err
	}

	if err := work.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	go s.dispatchConfirmation(*ord)

	slog.InfoContext(ctx, "Order placed successfully",
		"order_id", ord.ID,
		"order_number", ord.OrderNumber,
	)

	return ord, nil
}

// persistOrder runs the in-transaction steps: the authoritative stock
// deduction first, then the order, its line items, and the payment record.
func (s *OrderService) persistOrder(
	ctx context.Context,
	work unitOfWork,
	ord *order.Order,
	items []order.ItemRequest,
) error {
	if err := s.inventory.DeductStock(ctx, work.InventoryRepository(), items); err != nil {
		return err
	}

	if err := work.OrderRepository().Insert(ctx, *ord); err != nil {
		return err
	}

	if err := work.OrderItemRepository().BulkInsert(ctx, ord.Items); err != nil {
		return err
	}

	return work.PaymentRepository().Insert(ctx, *ord.Payment)
}

// dispatchConfirmation sends the order confirmation. Fire-and-forget: it runs
// on its own context, failures are logged and discarded, and nothing retries.
func (s *OrderService) dispatchConfirmation(ord order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recipient := fmt.Sprintf("user-%s@example.com", ord.UserID)
	subject := "Order Confirmation - " + ord.OrderNumber
	body := fmt.Sprintf(
		"Your order %s has been confirmed. Total: $%.2f",
		ord.OrderNumber,
		float64(ord.Totals.TotalCents)/100,
	)

	if err := s.notifier.Notify(ctx, "email", recipient, subject, body); err != nil {
		slog.Error("Failed to send order confirmation",
			"order_id", ord.ID,
			"error", err,
		)
	}
}

func validateRequest(req order.PlaceOrderRequest) error {
	if req.UserID == "" {
		return errs.NewValidation("user id is required")
	}

	if len(req.Items) == 0 {
		return errs.NewValidation("order must contain at least one item")
	}

	for _, item := range req.Items {
		if item.ProductID == "" {
			return errs.NewValidation("product id is required for all items")
		}
		if item.Quantity <= 0 {
			return errs.NewValidation("quantity must be greater than 0")
		}
		if item.Quantity > maxQuantityPerItem {
			return errs.NewValidation("quantity cannot exceed %d per item", maxQuantityPerItem)
		}
	}

	if strings.TrimSpace(req.ShippingAddress) == "" {
		return errs.NewValidation("shipping address is required")
	}

	if req.PaymentMethod == "" {
		return errs.NewValidation("payment method is required")
	}

	return nil
}
