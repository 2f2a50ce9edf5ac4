package query

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
)

// GetUserQuery represents a query to get a single user
type GetUserQuery struct {
	ID uint `json:"id"`
}

// GetUserHandler handles single user lookups
type GetUserHandler struct {
	userRepo domain.UserRepository
}

// NewGetUserHandler creates a new GetUserHandler
func NewGetUserHandler(userRepo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{userRepo: userRepo}
}

func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	return h.userRepo.FindByID(ctx, q.ID)
}
