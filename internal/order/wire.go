//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/order/delivery/http"
	"github.com/kapelokal/pos/internal/order/domain"
	"github.com/kapelokal/pos/internal/order/repository"
	"github.com/kapelokal/pos/kafka"
)

// ProvideOrderRepository provides the order repository with tracing
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
)

// InitializeHTTPHandler initializes the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
