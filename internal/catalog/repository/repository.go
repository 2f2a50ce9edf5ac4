package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kapelokal/pos/internal/catalog/domain"
	"github.com/kapelokal/pos/pkg/apperror"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("category %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	var categories []domain.Category
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, id).Error
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.ProductSize{})
}

// Create persists the product together with its initial size rows
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product, sizes []domain.SizeInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for _, s := range sizes {
			size := domain.ProductSize{
				ProductID: product.ID,
				Name:      s.Name,
				Price:     s.Price,
				IsDefault: s.IsDefault,
				SortOrder: s.SortOrder,
			}
			if err := tx.Create(&size).Error; err != nil {
				return err
			}
			product.Sizes = append(product.Sizes, size)
		}
		return nil
	})
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND track_inventory = ?", true, true).
		Where("stock_quantity <= low_stock_threshold").
		Order("stock_quantity")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&products).Error
	return products, err
}

// Update saves the product and replaces its size rows, diffed by id: rows
// absent from the input are deleted, rows with a known id are updated and
// id-less rows are created.
func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product, sizes []domain.SizeInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}

		keep := make([]uint, 0, len(sizes))
		for _, s := range sizes {
			if s.ID != 0 {
				keep = append(keep, s.ID)
			}
		}

		del := tx.Where("product_id = ?", product.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&domain.ProductSize{}).Error; err != nil {
			return err
		}

		product.Sizes = product.Sizes[:0]
		for _, s := range sizes {
			size := domain.ProductSize{
				ID:        s.ID,
				ProductID: product.ID,
				Name:      s.Name,
				Price:     s.Price,
				IsDefault: s.IsDefault,
				SortOrder: s.SortOrder,
			}
			if err := tx.Save(&size).Error; err != nil {
				return err
			}
			product.Sizes = append(product.Sizes, size)
		}
		return nil
	})
}

// Delete soft-deletes the product and its size children
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductSize{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, id).Error
	})
}

// MenuBoard loads active categories with their active products and ordered
// sizes, dropping categories that have nothing to show.
func (r *GormProductRepository) MenuBoard(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name")
		}).
		Preload("Products.Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	board := categories[:0]
	for _, c := range categories {
		if len(c.Products) > 0 {
			board = append(board, c)
		}
	}
	return board, nil
}

func (r *GormProductRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("is_active = ? AND track_inventory = ?", true, true).
		Where("stock_quantity <= low_stock_threshold").
		Count(&count).Error
	return count, err
}
