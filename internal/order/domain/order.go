package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	userdomain "github.com/kapelokal/pos/internal/user/domain"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment methods
const (
	PaymentCash          = "cash"
	PaymentCard          = "card"
	PaymentDigitalWallet = "digital_wallet"
)

// MaxNotesLength bounds the free-text notes on an order
const MaxNotesLength = 500

// ValidPaymentMethod reports whether m is an accepted payment method
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentDigitalWallet
}

// Order is the transaction header produced by a checkout
type Order struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	OrderNumber      string           `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID           uint             `json:"user_id" gorm:"not null;index"`
	User             *userdomain.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status           string           `json:"status" gorm:"not null;default:'pending';index"`
	Subtotal         float64          `json:"subtotal" gorm:"not null;default:0"`
	DiscountAmount   float64          `json:"discount_amount" gorm:"not null;default:0"`
	TotalAmount      float64          `json:"total_amount" gorm:"not null;default:0"`
	PaymentMethod    string           `json:"payment_method" gorm:"not null"`
	PaymentReference *string          `json:"payment_reference"`
	CashAmount       *float64         `json:"cash_amount"`
	Notes            string           `json:"notes"`
	Items            []OrderItem      `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time        `json:"updated_at"`
	CompletedAt      *time.Time       `json:"completed_at"`
	DeletedAt        gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line on an order. Product name, size name and unit price are
// value copies taken at sale time so history survives later catalog edits.
type OrderItem struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderID       uint           `json:"order_id" gorm:"not null;index"`
	ProductID     uint           `json:"product_id" gorm:"not null;index"`
	ProductSizeID *uint          `json:"product_size_id"`
	ProductName   string         `json:"product_name" gorm:"not null"`
	SizeName      *string        `json:"size_name"`
	UnitPrice     float64        `json:"unit_price" gorm:"not null"`
	Quantity      int            `json:"quantity" gorm:"not null"`
	LineTotal     float64        `json:"line_total" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// CartLine is a single product/size/quantity tuple submitted at checkout
type CartLine struct {
	ProductID     uint  `json:"product_id"`
	ProductSizeID *uint `json:"product_size_id"`
	Quantity      int   `json:"quantity"`
}

// OrderFilter narrows an order listing. All dimensions are conjunctive; the
// search term matches order number, operator name or item product name.
type OrderFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	OperatorID    uint
	PaymentMethod string
	Status        string
	Search        string
	Page          int
	PerPage       int
}

// OrderRepository defines the contract for order data access.
// Checkout executes the whole checkout sequence as one atomic transaction.
type OrderRepository interface {
	Checkout(ctx context.Context, order *Order, lines []CartLine) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	FindRecent(ctx context.Context, limit int) ([]Order, error)
}
