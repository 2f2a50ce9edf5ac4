package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/internal/order/domain"
	userdomain "github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductSize{},
		&userdomain.User{},
		&domain.Order{},
		&domain.OrderItem{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (coffee, cake catalogdomain.Product, largeSize catalogdomain.ProductSize) {
	t.Helper()

	category := catalogdomain.Category{Name: "Drinks", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	coffee = catalogdomain.Product{
		CategoryID:     category.ID,
		Name:           "Americano",
		Price:          120.00,
		StockQuantity:  50,
		IsActive:       true,
		TrackInventory: true,
	}
	require.NoError(t, db.Create(&coffee).Error)

	cake = catalogdomain.Product{
		CategoryID:     category.ID,
		Name:           "Banana Bread",
		Price:          95.00,
		StockQuantity:  10,
		IsActive:       true,
		TrackInventory: true,
	}
	require.NoError(t, db.Create(&cake).Error)

	largeSize = catalogdomain.ProductSize{
		ProductID: cake.ID,
		Name:      "Large",
		Price:     150.00,
	}
	require.NoError(t, db.Create(&largeSize).Error)
	return coffee, cake, largeSize
}

func seedUser(t *testing.T, db *gorm.DB, name string) userdomain.User {
	t.Helper()

	user := userdomain.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     userdomain.RoleCashier,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newOrder(userID uint, paymentMethod string) *domain.Order {
	return &domain.Order{
		OrderNumber:   fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		UserID:        userID,
		PaymentMethod: paymentMethod,
	}
}

func TestCheckoutComputesTotalsFromSnapshotPrices(t *testing.T) {
	db := openTestDB(t)
	coffee, cake, size := seedCatalog(t, db)
	cashier := seedUser(t, db, "ana")
	repo := NewGormOrderRepository(db)

	cash := 500.00
	order := newOrder(cashier.ID, domain.PaymentCash)
	order.CashAmount = &cash

	err := repo.Checkout(context.Background(), order, []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: cake.ID, ProductSizeID: &size.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, order.Status)
	assert.Equal(t, 390.00, order.Subtotal)
	assert.Equal(t, 390.00, order.TotalAmount)
	require.NotNil(t, order.CompletedAt)

	saved, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 390.00, saved.TotalAmount)
	assert.Zero(t, saved.DiscountAmount)
	require.Len(t, saved.Items, 2)

	// The sized line uses the size price, not the base price
	var sizedLine domain.OrderItem
	for _, item := range saved.Items {
		if item.ProductSizeID != nil {
			sizedLine = item
		}
	}
	assert.Equal(t, 150.00, sizedLine.UnitPrice)
	require.NotNil(t, sizedLine.SizeName)
	assert.Equal(t, "Large", *sizedLine.SizeName)
}

func TestCheckoutDecrementsStock(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "ben")
	repo := NewGormOrderRepository(db)

	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 3},
	})
	require.NoError(t, err)

	var reloaded catalogdomain.Product
	require.NoError(t, db.First(&reloaded, coffee.ID).Error)
	assert.Equal(t, 47, reloaded.StockQuantity)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	coffee, cake, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "cara")
	repo := NewGormOrderRepository(db)

	// First line would succeed, second exceeds stock
	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
		{ProductID: cake.ID, Quantity: 11},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// No order, no items, no decrement survived
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var reloaded catalogdomain.Product
	require.NoError(t, db.First(&reloaded, coffee.ID).Error)
	assert.Equal(t, 50, reloaded.StockQuantity)
}

func TestCheckoutRejectsUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	cashier := seedUser(t, db, "dan")
	repo := NewGormOrderRepository(db)

	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: 9999, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCheckoutRejectsInactiveProduct(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "eva")
	repo := NewGormOrderRepository(db)

	require.NoError(t, db.Model(&catalogdomain.Product{}).
		Where("id = ?", coffee.ID).
		Update("is_active", false).Error)

	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCheckoutRejectsSizeOfAnotherProduct(t *testing.T) {
	db := openTestDB(t)
	coffee, _, size := seedCatalog(t, db)
	cashier := seedUser(t, db, "fay")
	repo := NewGormOrderRepository(db)

	// size belongs to the cake, not the coffee
	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, ProductSizeID: &size.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCheckoutUntrackedProductSkipsStock(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "gil")
	repo := NewGormOrderRepository(db)

	require.NoError(t, db.Model(&catalogdomain.Product{}).
		Where("id = ?", coffee.ID).
		Updates(map[string]interface{}{"track_inventory": false, "stock_quantity": 0}).Error)

	err := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 5},
	})
	require.NoError(t, err)
}

func TestCheckoutSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "hana")
	repo := NewGormOrderRepository(db)

	order := newOrder(cashier.ID, domain.PaymentCash)
	require.NoError(t, repo.Checkout(context.Background(), order, []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
	}))

	// Rename and reprice after the sale
	require.NoError(t, db.Model(&catalogdomain.Product{}).
		Where("id = ?", coffee.ID).
		Updates(map[string]interface{}{"name": "Long Black", "price": 999.00}).Error)

	saved, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Americano", saved.Items[0].ProductName)
	assert.Equal(t, 120.00, saved.Items[0].UnitPrice)
}

func TestCheckoutContentionNeverOversells(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "iris")
	repo := NewGormOrderRepository(db)

	require.NoError(t, db.Model(&catalogdomain.Product{}).
		Where("id = ?", coffee.ID).
		Update("stock_quantity", 1).Error)

	first := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
	})
	second := repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
	})

	require.NoError(t, first)
	require.Error(t, second)
	assert.True(t, apperror.IsKind(second, apperror.KindInsufficientStock))

	var reloaded catalogdomain.Product
	require.NoError(t, db.First(&reloaded, coffee.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
}

func TestListFiltersAndSearch(t *testing.T) {
	db := openTestDB(t)
	coffee, cake, _ := seedCatalog(t, db)
	ana := seedUser(t, db, "ana")
	ben := seedUser(t, db, "ben")
	repo := NewGormOrderRepository(db)

	mustCheckout := func(userID uint, method string, lines []domain.CartLine) {
		t.Helper()
		require.NoError(t, repo.Checkout(context.Background(), newOrder(userID, method), lines))
	}

	mustCheckout(ana.ID, domain.PaymentCash, []domain.CartLine{{ProductID: coffee.ID, Quantity: 1}})
	mustCheckout(ana.ID, domain.PaymentCard, []domain.CartLine{{ProductID: cake.ID, Quantity: 1}})
	mustCheckout(ben.ID, domain.PaymentCash, []domain.CartLine{{ProductID: coffee.ID, Quantity: 2}})

	// By operator
	orders, total, err := repo.List(context.Background(), domain.OrderFilter{OperatorID: ana.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)

	// By payment method, conjunctive with operator
	orders, total, err = repo.List(context.Background(), domain.OrderFilter{
		OperatorID:    ana.ID,
		PaymentMethod: domain.PaymentCard,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.PaymentCard, orders[0].PaymentMethod)

	// Search matches the operator name
	_, total, err = repo.List(context.Background(), domain.OrderFilter{Search: "ben"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Search matches the snapshotted product name
	_, total, err = repo.List(context.Background(), domain.OrderFilter{Search: "Banana"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Most recent first
	orders, _, err = repo.List(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i-1].CreatedAt.Before(orders[i].CreatedAt))
	}
}

func TestListPagination(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "jon")
	repo := NewGormOrderRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
			{ProductID: coffee.ID, Quantity: 1},
		}))
	}

	orders, total, err := repo.List(context.Background(), domain.OrderFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, orders, 2)

	orders, total, err = repo.List(context.Background(), domain.OrderFilter{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, orders, 1)
}

func TestDateRangeFilter(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "kay")
	repo := NewGormOrderRepository(db)

	require.NoError(t, repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
		{ProductID: coffee.ID, Quantity: 1},
	}))

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	_, total, err := repo.List(context.Background(), domain.OrderFilter{DateFrom: &yesterday, DateTo: &tomorrow})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	dayBefore := time.Now().Add(-48 * time.Hour)
	_, total, err = repo.List(context.Background(), domain.OrderFilter{DateFrom: &dayBefore, DateTo: &yesterday})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestFindRecent(t *testing.T) {
	db := openTestDB(t)
	coffee, _, _ := seedCatalog(t, db)
	cashier := seedUser(t, db, "lou")
	repo := NewGormOrderRepository(db)

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Checkout(context.Background(), newOrder(cashier.ID, domain.PaymentCash), []domain.CartLine{
			{ProductID: coffee.ID, Quantity: 1},
		}))
	}

	orders, err := repo.FindRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
}
