package query

import (
	"context"
	"time"

	"github.com/kapelokal/pos/internal/analytics/domain"
	catalogdomain "github.com/kapelokal/pos/internal/catalog/domain"
	orderdomain "github.com/kapelokal/pos/internal/order/domain"
)

const (
	recentOrdersLimit  = 5
	lowStockItemsLimit = 5
)

// GetDashboardQuery requests the landing-page snapshot
type GetDashboardQuery struct{}

// GetDashboardHandler assembles the dashboard from the analytics, catalog
// and order read models
type GetDashboardHandler struct {
	analyticsRepo domain.AnalyticsRepository
	productRepo   catalogdomain.ProductRepository
	orderRepo     orderdomain.OrderRepository
	loc           *time.Location
	now           func() time.Time
}

// NewGetDashboardHandler creates a new GetDashboardHandler
func NewGetDashboardHandler(
	analyticsRepo domain.AnalyticsRepository,
	productRepo catalogdomain.ProductRepository,
	orderRepo orderdomain.OrderRepository,
	loc *time.Location,
) *GetDashboardHandler {
	return &GetDashboardHandler{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		loc:           loc,
		now:           time.Now,
	}
}

func (h *GetDashboardHandler) Handle(ctx context.Context, _ GetDashboardQuery) (*domain.DashboardSummary, error) {
	now := h.now().In(h.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)

	todayTotals, err := h.analyticsRepo.Totals(ctx, today, now)
	if err != nil {
		return nil, err
	}
	weekTotals, err := h.analyticsRepo.Totals(ctx, weekStart, now)
	if err != nil {
		return nil, err
	}
	monthTotals, err := h.analyticsRepo.Totals(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	activeProducts, err := h.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	lowStockCount, err := h.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStockItems, err := h.productRepo.FindLowStock(ctx, lowStockItemsLimit)
	if err != nil {
		return nil, err
	}
	recentOrders, err := h.orderRepo.FindRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	topProducts, err := h.analyticsRepo.TopProducts(ctx, today.AddDate(0, 0, -29), now, topProductsLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		TodaySales:     todayTotals.Revenue,
		TodayOrders:    todayTotals.OrderCount,
		WeekSales:      weekTotals.Revenue,
		MonthSales:     monthTotals.Revenue,
		ActiveProducts: activeProducts,
		LowStockCount:  lowStockCount,
		RecentOrders:   recentOrders,
		LowStockItems:  lowStockItems,
		TopProducts:    topProducts,
	}, nil
}
