package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/analytics/domain"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// GormAnalyticsRepository aggregates completed orders with SQL grouping.
// Queries use Postgres date functions and are not portable to other drivers.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) completed(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Where("orders.status = ?", "completed").
		Where("orders.deleted_at IS NULL").
		Where("orders.created_at BETWEEN ? AND ?", start, end)
}

func (r *GormAnalyticsRepository) Totals(ctx context.Context, start, end time.Time) (domain.PeriodTotals, error) {
	var totals domain.PeriodTotals
	err := r.completed(ctx, start, end).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Scan(&totals).Error
	if err != nil {
		return totals, err
	}

	err = r.completed(ctx, start, end).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&totals.ItemsSold).Error
	return totals, err
}

func (r *GormAnalyticsRepository) DailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	var rows []domain.DailySales
	err := r.completed(ctx, start, end).
		Select("TO_CHAR(orders.created_at, 'YYYY-MM-DD') AS date, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domain.TopProduct, error) {
	var rows []domain.TopProduct
	err := r.completed(ctx, start, end).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Select("order_items.product_id AS product_id, order_items.product_name AS product_name, SUM(order_items.quantity) AS units_sold, SUM(order_items.line_total) AS revenue").
		Group("order_items.product_id, order_items.product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) PaymentBreakdown(ctx context.Context, start, end time.Time) ([]domain.PaymentBreakdown, error) {
	var rows []domain.PaymentBreakdown
	err := r.completed(ctx, start, end).
		Select("payment_method, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("payment_method").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) WeekdaySales(ctx context.Context, start, end time.Time) ([]domain.WeekdaySales, error) {
	type row struct {
		DayNumber  int
		OrderCount int64
		Revenue    float64
	}
	var raw []row
	err := r.completed(ctx, start, end).
		Select("CAST(EXTRACT(DOW FROM orders.created_at) AS INTEGER) AS day_number, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("day_number").
		Order("day_number ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domain.WeekdaySales, 0, len(raw))
	for _, rw := range raw {
		ws := domain.WeekdaySales{
			DayNumber:  rw.DayNumber,
			OrderCount: rw.OrderCount,
			Revenue:    rw.Revenue,
		}
		if rw.DayNumber >= 0 && rw.DayNumber < 7 {
			ws.DayName = weekdayNames[rw.DayNumber]
		}
		if rw.OrderCount > 0 {
			avg := rw.Revenue / float64(rw.OrderCount)
			ws.AvgOrderValue = &avg
		}
		rows = append(rows, ws)
	}
	return rows, nil
}

func (r *GormAnalyticsRepository) HourlySales(ctx context.Context, start, end time.Time) ([]domain.HourlySales, error) {
	var rows []domain.HourlySales
	err := r.completed(ctx, start, end).
		Select("CAST(EXTRACT(HOUR FROM orders.created_at) AS INTEGER) AS hour, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("hour").
		Order("hour ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) WeeklyTrend(ctx context.Context, start, end time.Time) ([]domain.TrendPoint, error) {
	var rows []domain.TrendPoint
	err := r.completed(ctx, start, end).
		Select("TO_CHAR(DATE_TRUNC('week', orders.created_at), 'YYYY-MM-DD') AS bucket, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) MonthlyTrend(ctx context.Context, start, end time.Time) ([]domain.TrendPoint, error) {
	var rows []domain.TrendPoint
	err := r.completed(ctx, start, end).
		Select("TO_CHAR(orders.created_at, 'YYYY-MM') AS bucket, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormAnalyticsRepository) CategorySales(ctx context.Context, start, end time.Time) ([]domain.CategorySales, error) {
	var rows []domain.CategorySales
	err := r.completed(ctx, start, end).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Select("categories.id AS category_id, categories.name AS category_name, SUM(order_items.quantity) AS units_sold, SUM(order_items.line_total) AS revenue, COUNT(DISTINCT orders.id) AS order_count").
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}
