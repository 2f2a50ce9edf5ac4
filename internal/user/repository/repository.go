package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user with email %s not found", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("role ASC").
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeactivateGuarded flips is_active off with the administration guards
// evaluated inside the same transaction as the write, so two concurrent
// deactivations cannot both observe another admin and strand the system
// without one.
func (r *GormUserRepository) DeactivateGuarded(ctx context.Context, actorID, targetID uint) (*domain.User, error) {
	var target domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkGuards(tx, actorID, targetID, &target); err != nil {
			return err
		}
		target.IsActive = false
		return tx.Save(&target).Error
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// DeleteGuarded soft-deletes a user with the same guards as deactivation
func (r *GormUserRepository) DeleteGuarded(ctx context.Context, actorID, targetID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target domain.User
		if err := r.checkGuards(tx, actorID, targetID, &target); err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}

// checkGuards loads the target and enforces self-protection and last-admin
// protection. Must run inside the mutation transaction.
func (r *GormUserRepository) checkGuards(tx *gorm.DB, actorID, targetID uint, target *domain.User) error {
	if actorID == targetID {
		return apperror.InvariantViolation("you cannot modify your own account")
	}

	err := tx.First(target, targetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("user %d not found", targetID)
	}
	if err != nil {
		return err
	}

	if target.Role == domain.RoleAdmin && target.IsActive {
		var otherAdmins int64
		err := tx.Model(&domain.User{}).
			Where("role = ? AND is_active = ? AND id <> ?", domain.RoleAdmin, true, targetID).
			Count(&otherAdmins).Error
		if err != nil {
			return err
		}
		if otherAdmins == 0 {
			return apperror.InvariantViolation("cannot remove the last active admin")
		}
	}
	return nil
}

func (r *GormUserRepository) Stats(ctx context.Context) (*domain.UserStats, error) {
	var stats domain.UserStats
	db := r.db.WithContext(ctx).Model(&domain.User{})

	if err := db.Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("role = ?", domain.RoleAdmin).Count(&stats.AdminCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("role = ?", domain.RoleCashier).Count(&stats.CashierCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
