package command

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
)

// DeactivateUserCommand disables an account without removing it
type DeactivateUserCommand struct {
	ActorID  uint `json:"actor_id"`
	TargetID uint `json:"target_id"`
}

// DeactivateUserHandler handles account deactivation
type DeactivateUserHandler struct {
	userRepo domain.UserRepository
}

// NewDeactivateUserHandler creates a new DeactivateUserHandler
func NewDeactivateUserHandler(userRepo domain.UserRepository) *DeactivateUserHandler {
	return &DeactivateUserHandler{userRepo: userRepo}
}

func (h *DeactivateUserHandler) Handle(ctx context.Context, cmd DeactivateUserCommand) (*domain.User, error) {
	return h.userRepo.DeactivateGuarded(ctx, cmd.ActorID, cmd.TargetID)
}
