package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapelokal/pos/internal/analytics/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

// fakeAnalyticsRepository serves canned totals keyed by whether the range
// covers the current or the previous month
type fakeAnalyticsRepository struct {
	totalsByStart map[string]domain.PeriodTotals
	defaultTotals domain.PeriodTotals

	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeAnalyticsRepository) Totals(_ context.Context, start, end time.Time) (domain.PeriodTotals, error) {
	f.lastStart = start
	f.lastEnd = end
	if t, ok := f.totalsByStart[start.Format("2006-01-02")]; ok {
		return t, nil
	}
	return f.defaultTotals, nil
}

func (f *fakeAnalyticsRepository) DailySales(context.Context, time.Time, time.Time) ([]domain.DailySales, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) TopProducts(context.Context, time.Time, time.Time, int) ([]domain.TopProduct, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) PaymentBreakdown(context.Context, time.Time, time.Time) ([]domain.PaymentBreakdown, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) WeekdaySales(context.Context, time.Time, time.Time) ([]domain.WeekdaySales, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) HourlySales(context.Context, time.Time, time.Time) ([]domain.HourlySales, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) WeeklyTrend(context.Context, time.Time, time.Time) ([]domain.TrendPoint, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) MonthlyTrend(context.Context, time.Time, time.Time) ([]domain.TrendPoint, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepository) CategorySales(context.Context, time.Time, time.Time) ([]domain.CategorySales, error) {
	return nil, nil
}

func newTestHandler(repo domain.AnalyticsRepository, now time.Time) *GetReportHandler {
	h := NewGetReportHandler(repo, time.UTC)
	h.now = func() time.Time { return now }
	return h
}

var fixedNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestReportDefaultsToLast30Days(t *testing.T) {
	repo := &fakeAnalyticsRepository{}
	handler := newTestHandler(repo, fixedNow)

	report, err := handler.Handle(context.Background(), GetReportQuery{})
	require.NoError(t, err)

	assert.Equal(t, "30days", report.Period)
	assert.Equal(t, "2025-05-17", report.StartDate)
	assert.Equal(t, "2025-06-15", report.EndDate)
}

func TestReportNamedPeriods(t *testing.T) {
	cases := []struct {
		period    string
		wantStart string
	}{
		{"7days", "2025-06-09"},
		{"30days", "2025-05-17"},
		{"3months", "2025-03-15"},
		{"6months", "2024-12-15"},
		{"1year", "2024-06-15"},
	}

	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			handler := newTestHandler(&fakeAnalyticsRepository{}, fixedNow)

			report, err := handler.Handle(context.Background(), GetReportQuery{Period: tc.period})
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, report.StartDate)
			assert.Equal(t, "2025-06-15", report.EndDate)
		})
	}
}

func TestReportExplicitDatesOverridePeriod(t *testing.T) {
	handler := newTestHandler(&fakeAnalyticsRepository{}, fixedNow)

	report, err := handler.Handle(context.Background(), GetReportQuery{
		Period:    "7days",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom", report.Period)
	assert.Equal(t, "2025-01-01", report.StartDate)
	assert.Equal(t, "2025-01-31", report.EndDate)
}

func TestReportRejectsInvalidInput(t *testing.T) {
	handler := newTestHandler(&fakeAnalyticsRepository{}, fixedNow)

	_, err := handler.Handle(context.Background(), GetReportQuery{Period: "fortnight"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = handler.Handle(context.Background(), GetReportQuery{StartDate: "2025-02-01", EndDate: "2025-01-01"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = handler.Handle(context.Background(), GetReportQuery{StartDate: "not-a-date", EndDate: "2025-01-01"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestReportAvgOrderValueNilWithoutOrders(t *testing.T) {
	repo := &fakeAnalyticsRepository{}
	handler := newTestHandler(repo, fixedNow)

	report, err := handler.Handle(context.Background(), GetReportQuery{})
	require.NoError(t, err)

	assert.Nil(t, report.AvgOrderValue)
	assert.Nil(t, report.MonthOverMonth.RevenueGrowth)
	assert.Nil(t, report.MonthOverMonth.OrderGrowth)
	assert.Nil(t, report.MonthOverMonth.CurrentAvgValue)
	assert.Nil(t, report.MonthOverMonth.PreviousAvgValue)
}

func TestReportMonthOverMonthGrowth(t *testing.T) {
	repo := &fakeAnalyticsRepository{
		totalsByStart: map[string]domain.PeriodTotals{
			// Current month (June 2025)
			"2025-06-01": {OrderCount: 30, Revenue: 3000},
			// Previous month (May 2025)
			"2025-05-01": {OrderCount: 20, Revenue: 2000},
		},
	}
	handler := newTestHandler(repo, fixedNow)

	report, err := handler.Handle(context.Background(), GetReportQuery{Period: "7days"})
	require.NoError(t, err)

	mom := report.MonthOverMonth
	assert.EqualValues(t, 30, mom.CurrentOrders)
	assert.EqualValues(t, 20, mom.PreviousOrders)
	require.NotNil(t, mom.RevenueGrowth)
	assert.InDelta(t, 50.0, *mom.RevenueGrowth, 0.001)
	require.NotNil(t, mom.OrderGrowth)
	assert.InDelta(t, 50.0, *mom.OrderGrowth, 0.001)
	require.NotNil(t, mom.CurrentAvgValue)
	assert.InDelta(t, 100.0, *mom.CurrentAvgValue, 0.001)
}

func TestReportGrowthNilWhenPreviousMonthEmpty(t *testing.T) {
	repo := &fakeAnalyticsRepository{
		totalsByStart: map[string]domain.PeriodTotals{
			"2025-06-01": {OrderCount: 10, Revenue: 1000},
			"2025-05-01": {},
		},
	}
	handler := newTestHandler(repo, fixedNow)

	report, err := handler.Handle(context.Background(), GetReportQuery{Period: "7days"})
	require.NoError(t, err)

	assert.Nil(t, report.MonthOverMonth.RevenueGrowth)
	assert.Nil(t, report.MonthOverMonth.OrderGrowth)
	require.NotNil(t, report.MonthOverMonth.CurrentAvgValue)
}

func TestSalesByDate(t *testing.T) {
	repo := &fakeAnalyticsRepository{
		defaultTotals: domain.PeriodTotals{OrderCount: 4, Revenue: 480},
	}
	handler := NewSalesByDateHandler(repo, time.UTC)

	result, err := handler.Handle(context.Background(), SalesByDateQuery{Date: "2025-06-10"})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", result.Date)
	assert.Equal(t, 480.0, result.Revenue)
	assert.EqualValues(t, 4, result.OrderCount)

	// Range covers exactly one local day
	assert.Equal(t, "2025-06-10", repo.lastStart.Format("2006-01-02"))
	assert.Equal(t, "2025-06-10", repo.lastEnd.Format("2006-01-02"))

	_, err = handler.Handle(context.Background(), SalesByDateQuery{Date: "10-06-2025"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
