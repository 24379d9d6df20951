// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin       = "admin"
	RoleSalesperson = "salesperson"
)

// Commission basis values: which ledger record kinds feed a salesperson's
// commission base.
const (
	CommissionBasisSales    = "sales"
	CommissionBasisPayments = "payments"
	CommissionBasisBoth     = "both"
)

// User model. Admins manage everything; salespersons only see their own
// clients, ledger records and checks.
type User struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"password,omitempty" bson:"password"`
	FullName          string             `json:"fullName" bson:"fullName"`
	Role              string             `json:"role" bson:"role"` // "admin" or "salesperson"
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	CommissionPercent float64            `json:"commissionPercent" bson:"commissionPercent"`
	CommissionBasis   string             `json:"commissionBasis" bson:"commissionBasis"` // "sales", "payments" or "both"
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidCommissionBasis reports whether basis is one of the accepted values.
func ValidCommissionBasis(basis string) bool {
	switch basis {
	case CommissionBasisSales, CommissionBasisPayments, CommissionBasisBoth:
		return true
	}
	return false
}

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the body for creating a salesperson or admin
type CreateUserRequest struct {
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=8"`
	FullName          string  `json:"fullName" validate:"required"`
	Role              string  `json:"role" validate:"required,oneof=admin salesperson"`
	Phone             string  `json:"phone"`
	CommissionPercent float64 `json:"commissionPercent" validate:"gte=0,lte=100"`
	CommissionBasis   string  `json:"commissionBasis" validate:"omitempty,oneof=sales payments both"`
}

// UpdateUserRequest carries partial updates; nil fields are left untouched
type UpdateUserRequest struct {
	Email             *string  `json:"email,omitempty" validate:"omitempty,email"`
	Password          *string  `json:"password,omitempty" validate:"omitempty,min=8"`
	FullName          *string  `json:"fullName,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	IsActive          *bool    `json:"isActive,omitempty"`
	CommissionPercent *float64 `json:"commissionPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	CommissionBasis   *string  `json:"commissionBasis,omitempty" validate:"omitempty,oneof=sales payments both"`
}
