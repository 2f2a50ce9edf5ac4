package query

import (
	"context"

	"github.com/kapelokal/pos/internal/user/domain"
)

// GetStatsQuery represents a query for account statistics
type GetStatsQuery struct{}

// GetStatsHandler handles account statistics
type GetStatsHandler struct {
	userRepo domain.UserRepository
}

// NewGetStatsHandler creates a new GetStatsHandler
func NewGetStatsHandler(userRepo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{userRepo: userRepo}
}

func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*domain.UserStats, error) {
	return h.userRepo.Stats(ctx)
}
