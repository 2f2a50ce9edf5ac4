package command

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	CategoryID        uint
	Name              string
	Description       string
	Price             float64
	StockQuantity     int
	LowStockThreshold int
	SKU               *string
	ImageURL          string
	IsActive          bool
	TrackInventory    bool
	Sizes             []domain.SizeInput
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *CreateProductHandler {
	return &CreateProductHandler{products: products, categories: categories}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if err := validateProductInput(cmd.Name, cmd.Price, cmd.StockQuantity, cmd.LowStockThreshold, cmd.Sizes); err != nil {
		return nil, err
	}

	if _, err := h.categories.FindByID(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		CategoryID:        cmd.CategoryID,
		Name:              cmd.Name,
		Description:       cmd.Description,
		Price:             cmd.Price,
		StockQuantity:     cmd.StockQuantity,
		LowStockThreshold: cmd.LowStockThreshold,
		SKU:               cmd.SKU,
		ImageURL:          cmd.ImageURL,
		IsActive:          cmd.IsActive,
		TrackInventory:    cmd.TrackInventory,
	}

	if err := h.products.Create(ctx, product, cmd.Sizes); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func validateProductInput(name string, price float64, stock, threshold int, sizes []domain.SizeInput) error {
	if name == "" {
		return apperror.Validation("product name is required")
	}
	if price < 0 {
		return apperror.Validation("price cannot be negative")
	}
	if stock < 0 {
		return apperror.Validation("stock quantity cannot be negative")
	}
	if threshold < 0 {
		return apperror.Validation("low stock threshold cannot be negative")
	}
	for _, s := range sizes {
		if s.Name == "" {
			return apperror.Validation("size name is required")
		}
		if s.Price < 0 {
			return apperror.Validation("size price cannot be negative")
		}
	}
	return nil
}
