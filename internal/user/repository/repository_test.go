package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func seedAccount(t *testing.T, repo *GormUserRepository, name, role string, active bool) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestDeactivateGuardedRefusesSelf(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)

	_, err := repo.DeactivateGuarded(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
}

func TestDeactivateGuardedRefusesLastActiveAdmin(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	actor := seedAccount(t, repo, "cashier", domain.RoleCashier, true)
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)

	_, err := repo.DeactivateGuarded(context.Background(), actor.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))

	// Still active
	reloaded, err := repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsActive)
}

func TestDeactivateGuardedAllowsWhenAnotherAdminRemains(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	first := seedAccount(t, repo, "first", domain.RoleAdmin, true)
	second := seedAccount(t, repo, "second", domain.RoleAdmin, true)

	deactivated, err := repo.DeactivateGuarded(context.Background(), first.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestDeactivateGuardedIgnoresInactiveAdminsAsBackup(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	actor := seedAccount(t, repo, "cashier", domain.RoleCashier, true)
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)
	seedAccount(t, repo, "retired", domain.RoleAdmin, false)

	// The inactive admin does not count as a remaining admin
	_, err := repo.DeactivateGuarded(context.Background(), actor.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
}

func TestDeactivateGuardedAllowsCashierAnytime(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)
	cashier := seedAccount(t, repo, "cashier", domain.RoleCashier, true)

	deactivated, err := repo.DeactivateGuarded(context.Background(), admin.ID, cashier.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestDeleteGuardedRefusesSelfAndLastAdmin(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)
	cashier := seedAccount(t, repo, "cashier", domain.RoleCashier, true)

	err := repo.DeleteGuarded(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))

	err = repo.DeleteGuarded(context.Background(), cashier.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
}

func TestDeleteGuardedSoftDeletes(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)
	cashier := seedAccount(t, repo, "cashier", domain.RoleCashier, true)

	require.NoError(t, repo.DeleteGuarded(context.Background(), admin.ID, cashier.ID))

	_, err := repo.FindByID(context.Background(), cashier.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteGuardedUnknownTarget(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	admin := seedAccount(t, repo, "admin", domain.RoleAdmin, true)

	err := repo.DeleteGuarded(context.Background(), admin.ID, 9999)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFindAllOrdersByRoleThenName(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	seedAccount(t, repo, "zoe", domain.RoleCashier, true)
	seedAccount(t, repo, "amy", domain.RoleCashier, true)
	seedAccount(t, repo, "max", domain.RoleAdmin, true)

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "max", users[0].Name)
	assert.Equal(t, "amy", users[1].Name)
	assert.Equal(t, "zoe", users[2].Name)
}

func TestStats(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	seedAccount(t, repo, "admin", domain.RoleAdmin, true)
	seedAccount(t, repo, "cashier", domain.RoleCashier, true)
	seedAccount(t, repo, "retired", domain.RoleAdmin, false)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.AdminCount)
	assert.EqualValues(t, 1, stats.CashierCount)
	assert.EqualValues(t, 2, stats.ActiveUsers)
}
