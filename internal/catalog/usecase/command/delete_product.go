package command

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	products domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperror.Validation("invalid product id")
	}

	if _, err := h.products.FindByID(ctx, cmd.ID); err != nil {
		return err
	}

	if err := h.products.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
