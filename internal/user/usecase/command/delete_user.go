package command

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
)

// DeleteUserCommand removes an account (soft delete)
type DeleteUserCommand struct {
	ActorID  uint `json:"actor_id"`
	TargetID uint `json:"target_id"`
}

// DeleteUserHandler handles account deletion
type DeleteUserHandler struct {
	userRepo domain.UserRepository
}

// NewDeleteUserHandler creates a new DeleteUserHandler
func NewDeleteUserHandler(userRepo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{userRepo: userRepo}
}

func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	return h.userRepo.DeleteGuarded(ctx, cmd.ActorID, cmd.TargetID)
}
