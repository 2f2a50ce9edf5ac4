package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	catalogdomain "github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/internal/order/domain"
	userdomain "github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

// Checkout persists the order, its item snapshots and the stock decrements as
// a single transaction. Any failure rolls back everything: no partial order,
// no partial decrement.
//
// The stock guard is an atomic conditional UPDATE (stock_quantity >= quantity
// in the WHERE clause, rows-affected checked) so two concurrent checkouts
// cannot both pass the check and overdraw a product below zero.
func (r *GormOrderRepository) Checkout(ctx context.Context, order *domain.Order, lines []domain.CartLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.Status = domain.StatusPending
		order.Subtotal = 0
		order.TotalAmount = 0
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var subtotal float64
		for _, line := range lines {
			var product catalogdomain.Product
			err := tx.First(&product, line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("product %d not found", line.ProductID)
			}
			if err != nil {
				return err
			}
			if !product.IsActive {
				return apperror.Validation("product %s is not available for sale", product.Name)
			}

			if product.TrackInventory && product.StockQuantity < line.Quantity {
				return apperror.InsufficientStock(product.Name, product.ID)
			}

			// Snapshot price and names from current catalog state
			unitPrice := product.Price
			var sizeName *string
			var sizeID *uint
			if line.ProductSizeID != nil {
				var size catalogdomain.ProductSize
				err := tx.First(&size, *line.ProductSizeID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.NotFound("product size %d not found", *line.ProductSizeID)
				}
				if err != nil {
					return err
				}
				if size.ProductID != product.ID {
					return apperror.Validation("size %d does not belong to product %d", size.ID, product.ID)
				}
				unitPrice = size.Price
				sizeName = &size.Name
				sizeID = &size.ID
			}

			lineTotal := unitPrice * float64(line.Quantity)
			subtotal += lineTotal

			item := domain.OrderItem{
				OrderID:       order.ID,
				ProductID:     product.ID,
				ProductSizeID: sizeID,
				ProductName:   product.Name,
				SizeName:      sizeName,
				UnitPrice:     unitPrice,
				Quantity:      line.Quantity,
				LineTotal:     lineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			if product.TrackInventory {
				res := tx.Model(&catalogdomain.Product{}).
					Where("id = ? AND stock_quantity >= ?", product.ID, line.Quantity).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					// Stock was taken by a concurrent checkout after our read
					return apperror.InsufficientStock(product.Name, product.ID)
				}
			}
		}

		now := time.Now()
		order.Subtotal = subtotal
		order.TotalAmount = subtotal - order.DiscountAmount
		order.Status = domain.StatusCompleted
		order.CompletedAt = &now

		return tx.Model(&domain.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"subtotal":     order.Subtotal,
				"total_amount": order.TotalAmount,
				"status":       order.Status,
				"completed_at": order.CompletedAt,
			}).Error
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a page of orders, most recent first, with the total match count.
// Filter dimensions combine with AND; the search term is a disjunction over
// order number, operator name and item product names.
func (r *GormOrderRepository) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})

	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at <= ?", *f.DateTo)
	}
	if f.OperatorID != 0 {
		q = q.Where("user_id = ?", f.OperatorID)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			r.db.Where("order_number LIKE ?", like).
				Or("user_id IN (?)", r.db.Model(&userdomain.User{}).Select("id").Where("name LIKE ?", like)).
				Or("id IN (?)", r.db.Model(&domain.OrderItem{}).Select("order_id").Where("product_name LIKE ?", like)),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 25
	}

	var orders []domain.Order
	err := q.Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&orders).Error
	return orders, total, err
}

func (r *GormOrderRepository) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
