package command

import (
	"context"
	"fmt"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
	Color       string
	IsActive    bool
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	categories domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(categories domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: categories}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, apperror.Validation("category name is required")
	}

	category := &domain.Category{
		Name:        cmd.Name,
		Description: cmd.Description,
		Color:       cmd.Color,
		IsActive:    cmd.IsActive,
	}

	if err := h.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// UpdateCategoryCommand represents the command to update a category
type UpdateCategoryCommand struct {
	ID          uint
	Name        string
	Description string
	Color       string
	IsActive    bool
}

// UpdateCategoryHandler handles category updates
type UpdateCategoryHandler struct {
	categories domain.CategoryRepository
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(categories domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{categories: categories}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(ctx context.Context, cmd UpdateCategoryCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, apperror.Validation("invalid category id")
	}
	if cmd.Name == "" {
		return nil, apperror.Validation("category name is required")
	}

	category, err := h.categories.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	category.Name = cmd.Name
	category.Description = cmd.Description
	category.Color = cmd.Color
	category.IsActive = cmd.IsActive

	if err := h.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ID uint
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	categories domain.CategoryRepository
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(categories domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{categories: categories}
}

// Handle executes the delete category command
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	if cmd.ID == 0 {
		return apperror.Validation("invalid category id")
	}

	if _, err := h.categories.FindByID(ctx, cmd.ID); err != nil {
		return err
	}

	if err := h.categories.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
