package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Check states
const (
	CheckPending   = "pending"
	CheckCollected = "collected"
	CheckRejected  = "rejected"
	CheckVoided    = "voided"
)

// Check is a received cheque. Its lifecycle is independent of the ledger:
// collecting a check does not create a payment record automatically.
type Check struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Number    string             `json:"number" bson:"number"`
	Bank      string             `json:"bank" bson:"bank"`
	SubjectID primitive.ObjectID `json:"subjectId" bson:"subjectId"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	IssueDate time.Time          `json:"issueDate" bson:"issueDate"`
	DueDate   time.Time          `json:"dueDate" bson:"dueDate"`
	Amount    float64            `json:"amount" bson:"amount"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidCheckTransition reports whether a check may move from one status to
// another. Only pending checks can change state.
func ValidCheckTransition(from, to string) bool {
	if from != CheckPending {
		return false
	}
	switch to {
	case CheckCollected, CheckRejected, CheckVoided:
		return true
	}
	return false
}

// CreateCheckRequest is the body for registering a check
type CreateCheckRequest struct {
	Number    string  `json:"number" validate:"required"`
	Bank      string  `json:"bank" validate:"required"`
	SubjectID string  `json:"subjectId" validate:"required"`
	IssueDate string  `json:"issueDate" validate:"required"` // YYYY-MM-DD
	DueDate   string  `json:"dueDate" validate:"required"`   // YYYY-MM-DD
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// UpdateCheckStatusRequest is the body for a check state transition
type UpdateCheckStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=collected rejected voided"`
}
