package query

import (
	"context"
	"time"

	"github.com/kapelokal/pos/internal/analytics/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// SalesByDateQuery asks for one calendar day's totals
type SalesByDateQuery struct {
	Date string `json:"date"`
}

// SalesByDateResult is revenue and order count for the requested day
type SalesByDateResult struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

// SalesByDateHandler handles single-day sales lookups
type SalesByDateHandler struct {
	repo domain.AnalyticsRepository
	loc  *time.Location
}

// NewSalesByDateHandler creates a new SalesByDateHandler
func NewSalesByDateHandler(repo domain.AnalyticsRepository, loc *time.Location) *SalesByDateHandler {
	return &SalesByDateHandler{repo: repo, loc: loc}
}

func (h *SalesByDateHandler) Handle(ctx context.Context, q SalesByDateQuery) (*SalesByDateResult, error) {
	day, err := time.ParseInLocation("2006-01-02", q.Date, h.loc)
	if err != nil {
		return nil, apperror.Validation("invalid date: %s", q.Date)
	}

	start := day
	end := day.Add(24*time.Hour - time.Nanosecond)

	totals, err := h.repo.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &SalesByDateResult{
		Date:       q.Date,
		Revenue:    totals.Revenue,
		OrderCount: totals.OrderCount,
	}, nil
}
