package query

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	ActiveOnly bool
}

// ProductView is a product decorated with stock state for listings
type ProductView struct {
	domain.Product
	IsLowStock   bool `json:"is_low_stock"`
	IsOutOfStock bool `json:"is_out_of_stock"`
}

// ListProductsHandler handles product listing queries
type ListProductsHandler struct {
	products domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]ProductView, error) {
	products, err := h.products.FindAll(ctx, q.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			Product:      p,
			IsLowStock:   p.IsLowStock(),
			IsOutOfStock: p.IsOutOfStock(),
		})
	}
	return views, nil
}

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct {
	ActiveOnly bool
}

// ListCategoriesHandler handles category listing queries
type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context, q ListCategoriesQuery) ([]domain.Category, error) {
	categories, err := h.categories.FindAll(ctx, q.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
