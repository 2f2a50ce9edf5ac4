package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Category groups products on the menu
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	Products    []Product      `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Product represents a sellable item
type Product struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	CategoryID        uint           `json:"category_id" gorm:"not null;index"`
	Category          *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name              string         `json:"name" gorm:"not null"`
	Description       string         `json:"description"`
	Price             float64        `json:"price" gorm:"not null"`
	StockQuantity     int            `json:"stock_quantity" gorm:"not null;default:0"`
	LowStockThreshold int            `json:"low_stock_threshold" gorm:"not null;default:10"`
	SKU               *string        `json:"sku" gorm:"uniqueIndex"`
	ImageURL          string         `json:"image_url"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	TrackInventory    bool           `json:"track_inventory" gorm:"default:true"`
	Sizes             []ProductSize  `json:"sizes,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether tracked stock is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.TrackInventory && p.StockQuantity <= p.LowStockThreshold
}

// IsOutOfStock reports whether tracked stock is exhausted
func (p *Product) IsOutOfStock() bool {
	return p.TrackInventory && p.StockQuantity <= 0
}

// ProductSize is a sellable size variant whose price overrides the product base price
type ProductSize struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Price     float64        `json:"price" gorm:"not null"`
	IsDefault bool           `json:"is_default" gorm:"default:false"`
	SortOrder int            `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductSize) TableName() string {
	return "product_sizes"
}

// SizeInput describes a desired size row on product create/update.
// A zero ID means a new row; existing rows absent from the input are deleted.
type SizeInput struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
	SortOrder int     `json:"sort_order"`
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product, sizes []SizeInput) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Product, error)
	FindLowStock(ctx context.Context, limit int) ([]Product, error)
	Update(ctx context.Context, product *Product, sizes []SizeInput) error
	Delete(ctx context.Context, id uint) error
	MenuBoard(ctx context.Context) ([]Category, error)
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
