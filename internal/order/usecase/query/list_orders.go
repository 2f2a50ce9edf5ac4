package query

import (
	"context"

	"github.com/kapelokal/pos/internal/order/domain"
)

// ListOrdersQuery carries the history filters and pagination
type ListOrdersQuery struct {
	Filter domain.OrderFilter
}

// OrderPage is one page of order history
type OrderPage struct {
	Orders  []domain.Order `json:"orders"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// ListOrdersHandler handles order history queries
type ListOrdersHandler struct {
	orderRepo domain.OrderRepository
}

// NewListOrdersHandler creates a new ListOrdersHandler
func NewListOrdersHandler(orderRepo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orderRepo: orderRepo}
}

func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) (*OrderPage, error) {
	f := q.Filter
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 25
	}

	orders, total, err := h.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:  orders,
		Total:   total,
		Page:    f.Page,
		PerPage: f.PerPage,
	}, nil
}
