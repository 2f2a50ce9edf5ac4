package query

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
)

// ListUsersQuery represents a query to list all users
type ListUsersQuery struct{}

// ListUsersHandler handles user listing
type ListUsersHandler struct {
	userRepo domain.UserRepository
}

// NewListUsersHandler creates a new ListUsersHandler
func NewListUsersHandler(userRepo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{userRepo: userRepo}
}

func (h *ListUsersHandler) Handle(ctx context.Context, _ ListUsersQuery) ([]domain.User, error) {
	return h.userRepo.FindAll(ctx)
}
