package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kapelokal/pos/internal/order/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// CheckoutCommand represents the intent to finalize a sale
type CheckoutCommand struct {
	UserID           uint                `json:"user_id"`
	Items            []domain.CartLine   `json:"items"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	CashAmount       *float64            `json:"cash_amount,omitempty"`
	Notes            string              `json:"notes"`
}

// CheckoutHandler handles sale finalization
type CheckoutHandler struct {
	orderRepo domain.OrderRepository
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(orderRepo domain.OrderRepository) *CheckoutHandler {
	return &CheckoutHandler{orderRepo: orderRepo}
}

// Handle validates the cart and executes the checkout transaction
func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*domain.Order, error) {
	if len(cmd.Items) == 0 {
		return nil, apperror.Validation("cart must contain at least one item")
	}
	for i, line := range cmd.Items {
		if line.ProductID == 0 {
			return nil, apperror.Validation("item %d: product id is required", i)
		}
		if line.Quantity < 1 {
			return nil, apperror.Validation("item %d: quantity must be at least 1", i)
		}
	}
	if !domain.ValidPaymentMethod(cmd.PaymentMethod) {
		return nil, apperror.Validation("invalid payment method: %s", cmd.PaymentMethod)
	}
	if cmd.PaymentMethod != domain.PaymentCash {
		if cmd.PaymentReference == nil || *cmd.PaymentReference == "" {
			return nil, apperror.Validation("payment reference is required for %s payments", cmd.PaymentMethod)
		}
	}
	if cmd.CashAmount != nil && *cmd.CashAmount < 0 {
		return nil, apperror.Validation("cash amount cannot be negative")
	}
	if len(cmd.Notes) > domain.MaxNotesLength {
		return nil, apperror.Validation("notes cannot exceed %d characters", domain.MaxNotesLength)
	}

	order := &domain.Order{
		OrderNumber:      fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		UserID:           cmd.UserID,
		PaymentMethod:    cmd.PaymentMethod,
		PaymentReference: cmd.PaymentReference,
		CashAmount:       cmd.CashAmount,
		Notes:            cmd.Notes,
	}

	if err := h.orderRepo.Checkout(ctx, order, cmd.Items); err != nil {
		return nil, err
	}
	return order, nil
}
