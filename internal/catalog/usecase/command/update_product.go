package command

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// UpdateProductCommand represents the command to update a product.
// Sizes fully replace the existing size rows, diffed by id.
type UpdateProductCommand struct {
	ID                uint
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

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products, categories: categories}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperror.Validation("invalid product id")
	}
	if err := validateProductInput(cmd.Name, cmd.Price, cmd.StockQuantity, cmd.LowStockThreshold, cmd.Sizes); err != nil {
		return nil, err
	}

	product, err := h.products.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if _, err := h.categories.FindByID(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	product.CategoryID = cmd.CategoryID
	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.StockQuantity = cmd.StockQuantity
	product.LowStockThreshold = cmd.LowStockThreshold
	product.SKU = cmd.SKU
	product.ImageURL = cmd.ImageURL
	product.IsActive = cmd.IsActive
	product.TrackInventory = cmd.TrackInventory
	product.Category = nil

	if err := h.products.Update(ctx, product, cmd.Sizes); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
