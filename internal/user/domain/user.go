package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Role types
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents an administrative account (admin or cashier)
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // Never expose password in JSON
	Role      string         `json:"role" gorm:"not null;default:'cashier'"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCashier checks if user has cashier role
func (u *User) IsCashier() bool {
	return u.Role == RoleCashier
}

// UserStats summarizes the account roster
type UserStats struct {
	TotalUsers   int64 `json:"total_users"`
	AdminCount   int64 `json:"admin_count"`
	CashierCount int64 `json:"cashier_count"`
	ActiveUsers  int64 `json:"active_users"`
}

// UserRepository defines the contract for user data access.
// DeactivateGuarded and DeleteGuarded run the self-protection and
// last-admin checks inside the same transaction as the mutation.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	DeactivateGuarded(ctx context.Context, actorID, targetID uint) (*User, error)
	DeleteGuarded(ctx context.Context, actorID, targetID uint) error
	Stats(ctx context.Context) (*UserStats, error)
}
