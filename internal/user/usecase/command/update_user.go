package command

import (
	"context"
	"strings"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
)

// UpdateUserCommand updates an account's profile, role or password.
// Empty fields are left unchanged.
type UpdateUserCommand struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserHandler handles account updates
type UpdateUserHandler struct {
	userRepo domain.UserRepository
}

// NewUpdateUserHandler creates a new UpdateUserHandler
func NewUpdateUserHandler(userRepo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{userRepo: userRepo}
}

func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.userRepo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(cmd.Email); email != "" && email != user.Email {
		if existing, _ := h.userRepo.FindByEmail(ctx, email); existing != nil && existing.ID != user.ID {
			return nil, apperror.Validation("email %s is already registered", email)
		}
		user.Email = email
	}
	if cmd.Role != "" {
		if cmd.Role != domain.RoleAdmin && cmd.Role != domain.RoleCashier {
			return nil, apperror.Validation("invalid role: %s", cmd.Role)
		}
		user.Role = cmd.Role
	}
	if cmd.Password != "" {
		if len(cmd.Password) < 8 {
			return nil, apperror.Validation("password must be at least 8 characters")
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Password = hashed
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
