package query

import (
	"context"

	"github.com/kapelokal/pos/internal/order/domain"
)

// GetOrderQuery represents a query to get a single order
type GetOrderQuery struct {
	ID uint `json:"id"`
}

// GetOrderHandler handles single order lookups
type GetOrderHandler struct {
	orderRepo domain.OrderRepository
}

// NewGetOrderHandler creates a new GetOrderHandler
func NewGetOrderHandler(orderRepo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orderRepo: orderRepo}
}

func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	return h.orderRepo.FindByID(ctx, q.ID)
}
