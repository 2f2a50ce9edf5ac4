package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository with tracing
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

// Checkout with tracing
func (r *GormOrderRepositoryWithTracing) Checkout(ctx context.Context, order *domain.Order, lines []domain.CartLine) error {
	ctx, span := tracer.Start(ctx, "repository.Checkout",
		trace.WithAttributes(
			attribute.String("order.payment_method", order.PaymentMethod),
			attribute.Int("order.line_count", len(lines)),
		),
	)
	defer span.End()

	err := r.GormOrderRepository.Checkout(ctx, order, lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.Int("order.id", int(order.ID)),
		attribute.String("order.number", order.OrderNumber),
		attribute.Float64("order.total_amount", order.TotalAmount),
	)
	return nil
}

// FindByID with tracing
func (r *GormOrderRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("order.id", int(id)),
		),
	)
	defer span.End()

	order, err := r.GormOrderRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.number", order.OrderNumber),
		attribute.String("order.status", order.Status),
	)
	return order, nil
}

// List with tracing
func (r *GormOrderRepositoryWithTracing) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.Int("query.page", f.Page),
			attribute.Int("query.per_page", f.PerPage),
		),
	)
	defer span.End()

	orders, total, err := r.GormOrderRepository.List(ctx, f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(orders)),
		attribute.Int64("result.total", total),
	)
	return orders, total, err
}

// FindRecent with tracing
func (r *GormOrderRepositoryWithTracing) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindRecent",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	orders, err := r.GormOrderRepository.FindRecent(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}
