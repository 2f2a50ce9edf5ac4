package query

import (
	"context"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product queries
type GetProductHandler struct {
	products domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(products domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{products: products}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ID == 0 {
		return nil, apperror.Validation("invalid product id")
	}
	return h.products.FindByID(ctx, q.ID)
}
