package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormUserRepositoryWithTracing wraps GormUserRepository with tracing
type GormUserRepositoryWithTracing struct {
	*GormUserRepository
}

// NewGormUserRepositoryWithTracing creates a new repository with tracing
func NewGormUserRepositoryWithTracing(db *gorm.DB) *GormUserRepositoryWithTracing {
	return &GormUserRepositoryWithTracing{
		GormUserRepository: NewGormUserRepository(db),
	}
}

// Create with tracing
func (r *GormUserRepositoryWithTracing) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("user.email", user.Email),
			attribute.String("user.role", user.Role),
		),
	)
	defer span.End()

	err := r.GormUserRepository.Create(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

// FindByID with tracing
func (r *GormUserRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("user.id", int(id)),
		),
	)
	defer span.End()

	user, err := r.GormUserRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user.role", user.Role))
	return user, nil
}

// DeactivateGuarded with tracing
func (r *GormUserRepositoryWithTracing) DeactivateGuarded(ctx context.Context, actorID, targetID uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.DeactivateGuarded",
		trace.WithAttributes(
			attribute.Int("user.actor_id", int(actorID)),
			attribute.Int("user.target_id", int(targetID)),
		),
	)
	defer span.End()

	user, err := r.GormUserRepository.DeactivateGuarded(ctx, actorID, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}

// DeleteGuarded with tracing
func (r *GormUserRepositoryWithTracing) DeleteGuarded(ctx context.Context, actorID, targetID uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteGuarded",
		trace.WithAttributes(
			attribute.Int("user.actor_id", int(actorID)),
			attribute.Int("user.target_id", int(targetID)),
		),
	)
	defer span.End()

	err := r.GormUserRepository.DeleteGuarded(ctx, actorID, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
