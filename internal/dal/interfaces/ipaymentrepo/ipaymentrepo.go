package ipaymentrepo

import (
	"context"

	"github.com/vkurdin/shop-svc/internal/service/models/payment"
)

// IPaymentRepository is the payment record persistence contract.
type IPaymentRepository interface {
	Insert(ctx context.Context, p payment.Payment) error
	QueryByOrderIds(ctx context.Context, orderIds []string) ([]payment.Payment, error)
}
