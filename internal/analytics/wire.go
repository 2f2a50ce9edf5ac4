//go:build wireinject
// +build wireinject

package analytics

import (
	"time"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/analytics/delivery/http"
	"github.com/kapelokal/pos/internal/analytics/domain"
	"github.com/kapelokal/pos/internal/analytics/repository"
	"github.com/kapelokal/pos/internal/analytics/usecase/query"
	catalogdomain "github.com/kapelokal/pos/internal/catalog/domain"
	orderdomain "github.com/kapelokal/pos/internal/order/domain"
)

// ProvideAnalyticsRepository provides the analytics repository
func ProvideAnalyticsRepository(db *gorm.DB) domain.AnalyticsRepository {
	return repository.NewGormAnalyticsRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideAnalyticsRepository,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetReportHandler,
	query.NewGetDashboardHandler,
	query.NewSalesByDateHandler,
)

// InitializeHTTPHandler initializes the analytics HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	productRepo catalogdomain.ProductRepository,
	orderRepo orderdomain.OrderRepository,
	loc *time.Location,
) (*http.AnalyticsHandler, error) {
	wire.Build(
		RepositorySet,
		QueryHandlerSet,
		http.NewAnalyticsHandler,
	)
	return nil, nil
}
