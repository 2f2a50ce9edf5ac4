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

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.ProductSize{}))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string, active bool) domain.Category {
	t.Helper()

	category := domain.Category{Name: name, IsActive: active}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func TestCreateProductWithSizes(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db, "Drinks", true)

	product := &domain.Product{
		CategoryID:     category.ID,
		Name:           "Latte",
		Price:          140.00,
		StockQuantity:  20,
		IsActive:       true,
		TrackInventory: true,
	}
	sizes := []domain.SizeInput{
		{Name: "Small", Price: 120.00, IsDefault: true, SortOrder: 1},
		{Name: "Large", Price: 160.00, SortOrder: 2},
	}
	require.NoError(t, repo.Create(context.Background(), product, sizes))

	saved, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, saved.Sizes, 2)
	assert.Equal(t, "Small", saved.Sizes[0].Name)
	assert.True(t, saved.Sizes[0].IsDefault)
}

func TestUpdateReplacesSizesByIDDiff(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db, "Drinks", true)

	product := &domain.Product{CategoryID: category.ID, Name: "Mocha", Price: 150, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), product, []domain.SizeInput{
		{Name: "Small", Price: 130, SortOrder: 1},
		{Name: "Medium", Price: 150, SortOrder: 2},
		{Name: "Large", Price: 170, SortOrder: 3},
	}))

	saved, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, saved.Sizes, 3)
	smallID := saved.Sizes[0].ID

	// Keep Small (renamed, repriced), drop Medium and Large, add Grande
	require.NoError(t, repo.Update(context.Background(), saved, []domain.SizeInput{
		{ID: smallID, Name: "Solo", Price: 125, SortOrder: 1},
		{Name: "Grande", Price: 180, SortOrder: 2},
	}))

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Sizes, 2)

	assert.Equal(t, smallID, reloaded.Sizes[0].ID)
	assert.Equal(t, "Solo", reloaded.Sizes[0].Name)
	assert.Equal(t, 125.0, reloaded.Sizes[0].Price)
	assert.Equal(t, "Grande", reloaded.Sizes[1].Name)
}

func TestUpdateWithNoSizesRemovesAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db, "Drinks", true)

	product := &domain.Product{CategoryID: category.ID, Name: "Espresso", Price: 90, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), product, []domain.SizeInput{
		{Name: "Doppio", Price: 110, SortOrder: 1},
	}))

	saved, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Update(context.Background(), saved, nil))

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Sizes)
}

func TestDeleteSoftDeletesProductAndSizes(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db, "Drinks", true)

	product := &domain.Product{CategoryID: category.ID, Name: "Flat White", Price: 145, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), product, []domain.SizeInput{
		{Name: "Regular", Price: 145, SortOrder: 1},
	}))

	require.NoError(t, repo.Delete(context.Background(), product.ID))

	_, err := repo.FindByID(context.Background(), product.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// Soft delete keeps the rows
	var count int64
	require.NoError(t, db.Unscoped().Model(&domain.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMenuBoardSkipsEmptyAndInactive(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)

	drinks := seedCategory(t, db, "Drinks", true)
	seedCategory(t, db, "Empty", true)
	hidden := seedCategory(t, db, "Hidden", false)

	require.NoError(t, repo.Create(context.Background(), &domain.Product{
		CategoryID: drinks.ID, Name: "Americano", Price: 120, IsActive: true,
	}, nil))
	require.NoError(t, repo.Create(context.Background(), &domain.Product{
		CategoryID: drinks.ID, Name: "Retired", Price: 100, IsActive: false,
	}, nil))
	require.NoError(t, repo.Create(context.Background(), &domain.Product{
		CategoryID: hidden.ID, Name: "Secret", Price: 500, IsActive: true,
	}, nil))

	board, err := repo.MenuBoard(context.Background())
	require.NoError(t, err)

	require.Len(t, board, 1)
	assert.Equal(t, "Drinks", board[0].Name)
	require.Len(t, board[0].Products, 1)
	assert.Equal(t, "Americano", board[0].Products[0].Name)
}

func TestLowStockQueries(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db, "Drinks", true)

	mkProduct := func(name string, stock, threshold int, tracked bool) {
		t.Helper()
		require.NoError(t, repo.Create(context.Background(), &domain.Product{
			CategoryID:        category.ID,
			Name:              name,
			Price:             100,
			StockQuantity:     stock,
			LowStockThreshold: threshold,
			IsActive:          true,
			TrackInventory:    tracked,
		}, nil))
	}

	mkProduct("plenty", 50, 10, true)
	mkProduct("low", 3, 10, true)
	mkProduct("out", 0, 10, true)
	mkProduct("untracked", 0, 10, false)

	low, err := repo.FindLowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// Lowest stock first
	assert.Equal(t, "out", low[0].Name)
	assert.Equal(t, "low", low[1].Name)

	count, err := repo.CountLowStock(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	active, err := repo.CountActive(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, active)
}

func TestCategoryCRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)

	category := &domain.Category{Name: "Pastries", Color: "#8B4513", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), category))

	found, err := repo.FindByID(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pastries", found.Name)

	found.Name = "Baked Goods"
	require.NoError(t, repo.Update(context.Background(), found))

	all, err := repo.FindAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Baked Goods", all[0].Name)

	require.NoError(t, repo.Delete(context.Background(), category.ID))
	_, err = repo.FindByID(context.Background(), category.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
