package query

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
)

// MenuBoardQuery represents the query for the customer-facing menu board
type MenuBoardQuery struct{}

// MenuBoardHandler handles menu board queries
type MenuBoardHandler struct {
	products domain.ProductRepository
}

// NewMenuBoardHandler creates a new menu board handler
func NewMenuBoardHandler(products domain.ProductRepository) *MenuBoardHandler {
	return &MenuBoardHandler{products: products}
}

// Handle returns active categories with their active products and sizes,
// skipping categories with nothing to display.
func (h *MenuBoardHandler) Handle(ctx context.Context, q MenuBoardQuery) ([]domain.Category, error) {
	board, err := h.products.MenuBoard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu board: %w", err)
	}
	return board, nil
}
