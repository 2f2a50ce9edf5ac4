package query

import (
	"context"
	"time"

	"github.com/kapelokal/pos/internal/analytics/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

const topProductsLimit = 10

// GetReportQuery selects the reporting range. StartDate and EndDate
// (YYYY-MM-DD) override Period when both are present.
type GetReportQuery struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GetReportHandler builds the full analytics report
type GetReportHandler struct {
	repo domain.AnalyticsRepository
	loc  *time.Location
	now  func() time.Time
}

// NewGetReportHandler creates a new GetReportHandler
func NewGetReportHandler(repo domain.AnalyticsRepository, loc *time.Location) *GetReportHandler {
	return &GetReportHandler{repo: repo, loc: loc, now: time.Now}
}

func (h *GetReportHandler) Handle(ctx context.Context, q GetReportQuery) (*domain.Report, error) {
	start, end, period, err := h.resolveRange(q)
	if err != nil {
		return nil, err
	}

	totals, err := h.repo.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Period:    period,
		Totals:    totals,
	}
	if totals.OrderCount > 0 {
		avg := totals.Revenue / float64(totals.OrderCount)
		report.AvgOrderValue = &avg
	}

	if report.DailySales, err = h.repo.DailySales(ctx, start, end); err != nil {
		return nil, err
	}
	if report.TopProducts, err = h.repo.TopProducts(ctx, start, end, topProductsLimit); err != nil {
		return nil, err
	}
	if report.PaymentMethods, err = h.repo.PaymentBreakdown(ctx, start, end); err != nil {
		return nil, err
	}
	if report.WeekdaySales, err = h.repo.WeekdaySales(ctx, start, end); err != nil {
		return nil, err
	}
	if report.HourlySales, err = h.repo.HourlySales(ctx, start, end); err != nil {
		return nil, err
	}
	if report.WeeklyTrend, err = h.repo.WeeklyTrend(ctx, start, end); err != nil {
		return nil, err
	}
	if report.MonthlyTrend, err = h.repo.MonthlyTrend(ctx, start, end); err != nil {
		return nil, err
	}
	if report.CategorySales, err = h.repo.CategorySales(ctx, start, end); err != nil {
		return nil, err
	}

	mom, err := h.monthOverMonth(ctx)
	if err != nil {
		return nil, err
	}
	report.MonthOverMonth = *mom

	return report, nil
}

// resolveRange turns the query into a concrete [start, end] in the local
// timezone. Explicit dates win over the named period; the default is the
// last 30 days ending today.
func (h *GetReportHandler) resolveRange(q GetReportQuery) (time.Time, time.Time, string, error) {
	now := h.now().In(h.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	endOfToday := today.Add(24*time.Hour - time.Nanosecond)

	if q.StartDate != "" && q.EndDate != "" {
		start, err := time.ParseInLocation("2006-01-02", q.StartDate, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, "", apperror.Validation("invalid start_date: %s", q.StartDate)
		}
		end, err := time.ParseInLocation("2006-01-02", q.EndDate, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, "", apperror.Validation("invalid end_date: %s", q.EndDate)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, "", apperror.Validation("end_date cannot be before start_date")
		}
		return start, end.Add(24*time.Hour - time.Nanosecond), "custom", nil
	}

	period := q.Period
	if period == "" {
		period = domain.Period30Days
	}

	var start time.Time
	switch period {
	case domain.Period7Days:
		start = today.AddDate(0, 0, -6)
	case domain.Period30Days:
		start = today.AddDate(0, 0, -29)
	case domain.Period3Months:
		start = today.AddDate(0, -3, 0)
	case domain.Period6Months:
		start = today.AddDate(0, -6, 0)
	case domain.Period1Year:
		start = today.AddDate(-1, 0, 0)
	case domain.PeriodAll:
		start = time.Date(2000, 1, 1, 0, 0, 0, 0, h.loc)
	default:
		return time.Time{}, time.Time{}, "", apperror.Validation("invalid period: %s", period)
	}
	return start, endOfToday, period, nil
}

// monthOverMonth compares the current calendar month to the previous one,
// always relative to now rather than the selected range.
func (h *GetReportHandler) monthOverMonth(ctx context.Context) (*domain.MonthComparison, error) {
	now := h.now().In(h.loc)

	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.Add(-time.Nanosecond)

	current, err := h.repo.Totals(ctx, curStart, now)
	if err != nil {
		return nil, err
	}
	previous, err := h.repo.Totals(ctx, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	cmp := &domain.MonthComparison{
		CurrentOrders:   current.OrderCount,
		CurrentRevenue:  current.Revenue,
		PreviousOrders:  previous.OrderCount,
		PreviousRevenue: previous.Revenue,
	}
	if current.OrderCount > 0 {
		avg := current.Revenue / float64(current.OrderCount)
		cmp.CurrentAvgValue = &avg
	}
	if previous.OrderCount > 0 {
		avg := previous.Revenue / float64(previous.OrderCount)
		cmp.PreviousAvgValue = &avg
	}
	if previous.Revenue > 0 {
		growth := (current.Revenue - previous.Revenue) / previous.Revenue * 100
		cmp.RevenueGrowth = &growth
	}
	if previous.OrderCount > 0 {
		growth := float64(current.OrderCount-previous.OrderCount) / float64(previous.OrderCount) * 100
		cmp.OrderGrowth = &growth
	}
	return cmp, nil
}
