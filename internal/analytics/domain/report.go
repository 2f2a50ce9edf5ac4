package domain

import (
	"context"
	"time"

	catalogdomain "github.com/kapelokal/pos/internal/catalog/domain"
	orderdomain "github.com/kapelokal/pos/internal/order/domain"
)

// Named reporting periods
const (
	Period7Days   = "7days"
	Period30Days  = "30days"
	Period3Months = "3months"
	Period6Months = "6months"
	Period1Year   = "1year"
	PeriodAll     = "all"
)

// DailySales is revenue and order count for one calendar day
type DailySales struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

// TopProduct is one row of the units-sold ranking
type TopProduct struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int64   `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

// PaymentBreakdown is order count and revenue for one payment method
type PaymentBreakdown struct {
	PaymentMethod string  `json:"payment_method"`
	OrderCount    int64   `json:"order_count"`
	Revenue       float64 `json:"revenue"`
}

// WeekdaySales is the aggregate for one day of the week. DayNumber follows
// the database convention: 0 is Sunday.
type WeekdaySales struct {
	DayNumber     int      `json:"day_number"`
	DayName       string   `json:"day_name"`
	OrderCount    int64    `json:"order_count"`
	Revenue       float64  `json:"revenue"`
	AvgOrderValue *float64 `json:"avg_order_value"`
}

// HourlySales is the aggregate for one hour of the day (0-23)
type HourlySales struct {
	Hour       int     `json:"hour"`
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// TrendPoint is one bucket of a weekly or monthly revenue series
type TrendPoint struct {
	Bucket     string  `json:"bucket"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

// CategorySales is the aggregate for one product category
type CategorySales struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	UnitsSold    int64   `json:"units_sold"`
	Revenue      float64 `json:"revenue"`
	OrderCount   int64   `json:"order_count"`
}

// PeriodTotals is the aggregate of completed orders within a range
type PeriodTotals struct {
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
	ItemsSold  int64   `json:"items_sold"`
}

// MonthComparison compares the current calendar month against the previous
// one. Growth is nil when the previous month had no revenue.
type MonthComparison struct {
	CurrentOrders    int64    `json:"current_orders"`
	CurrentRevenue   float64  `json:"current_revenue"`
	CurrentAvgValue  *float64 `json:"current_avg_order_value"`
	PreviousOrders   int64    `json:"previous_orders"`
	PreviousRevenue  float64  `json:"previous_revenue"`
	PreviousAvgValue *float64 `json:"previous_avg_order_value"`
	RevenueGrowth    *float64 `json:"revenue_growth"`
	OrderGrowth      *float64 `json:"order_growth"`
}

// Report is the full analytics payload for a resolved range
type Report struct {
	StartDate        string             `json:"start_date"`
	EndDate          string             `json:"end_date"`
	Period           string             `json:"period"`
	Totals           PeriodTotals       `json:"totals"`
	AvgOrderValue    *float64           `json:"avg_order_value"`
	DailySales       []DailySales       `json:"daily_sales"`
	TopProducts      []TopProduct       `json:"top_products"`
	PaymentMethods   []PaymentBreakdown `json:"payment_methods"`
	WeekdaySales     []WeekdaySales     `json:"weekday_sales"`
	HourlySales      []HourlySales      `json:"hourly_sales"`
	WeeklyTrend      []TrendPoint       `json:"weekly_trend"`
	MonthlyTrend     []TrendPoint       `json:"monthly_trend"`
	CategorySales    []CategorySales    `json:"category_sales"`
	MonthOverMonth   MonthComparison    `json:"month_over_month"`
}

// DashboardSummary is the landing-page snapshot
type DashboardSummary struct {
	TodaySales     float64                 `json:"today_sales"`
	TodayOrders    int64                   `json:"today_orders"`
	WeekSales      float64                 `json:"week_sales"`
	MonthSales     float64                 `json:"month_sales"`
	ActiveProducts int64                   `json:"active_products"`
	LowStockCount  int64                   `json:"low_stock_count"`
	RecentOrders   []orderdomain.Order     `json:"recent_orders"`
	LowStockItems  []catalogdomain.Product `json:"low_stock_items"`
	TopProducts    []TopProduct            `json:"top_products"`
}

// AnalyticsRepository reads completed-order aggregates
type AnalyticsRepository interface {
	Totals(ctx context.Context, start, end time.Time) (PeriodTotals, error)
	DailySales(ctx context.Context, start, end time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
	PaymentBreakdown(ctx context.Context, start, end time.Time) ([]PaymentBreakdown, error)
	WeekdaySales(ctx context.Context, start, end time.Time) ([]WeekdaySales, error)
	HourlySales(ctx context.Context, start, end time.Time) ([]HourlySales, error)
	WeeklyTrend(ctx context.Context, start, end time.Time) ([]TrendPoint, error)
	MonthlyTrend(ctx context.Context, start, end time.Time) ([]TrendPoint, error)
	CategorySales(ctx context.Context, start, end time.Time) ([]CategorySales, error)
}
