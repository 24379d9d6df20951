package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense is an operating expense, tracked separately from the client ledger.
type Expense struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Date        time.Time          `json:"date" bson:"date"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Amount      float64            `json:"amount" bson:"amount"`
	CreatedBy   primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateExpenseRequest is the body for recording an expense
type CreateExpenseRequest struct {
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// UpdateExpenseRequest carries partial updates to an expense
type UpdateExpenseRequest struct {
	Date        *string  `json:"date,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}
