package command

import (
	"context"
	"strings"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
)

// CreateUserCommand represents the intent to create a new account
type CreateUserCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUserHandler handles account creation
type CreateUserHandler struct {
	userRepo domain.UserRepository
}

// NewCreateUserHandler creates a new CreateUserHandler
func NewCreateUserHandler(userRepo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{userRepo: userRepo}
}

func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperror.Validation("name is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		return nil, apperror.Validation("email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, apperror.Validation("password must be at least 8 characters")
	}
	role := cmd.Role
	if role == "" {
		role = domain.RoleCashier
	}
	if role != domain.RoleAdmin && role != domain.RoleCashier {
		return nil, apperror.Validation("invalid role: %s", cmd.Role)
	}

	if existing, _ := h.userRepo.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, apperror.Validation("email %s is already registered", cmd.Email)
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
