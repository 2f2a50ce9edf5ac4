package command

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
)

// LoginUserCommand represents a login attempt
type LoginUserCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the issued token and the authenticated user
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles authentication
type LoginUserHandler struct {
	userRepo domain.UserRepository
}

// NewLoginUserHandler creates a new LoginUserHandler
func NewLoginUserHandler(userRepo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{userRepo: userRepo}
}

func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	user, err := h.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		// Same answer for unknown email and wrong password
		return nil, apperror.Validation("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperror.Validation("account is disabled")
	}
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, apperror.Validation("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &LoginResult{Token: token, User: user}, nil
}
