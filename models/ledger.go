package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ledger record kinds
const (
	KindSale              = "sale"
	KindPayment           = "payment"
	KindCreditNote        = "credit_note"
	KindBalanceAdjustment = "adjustment"
	KindReturn            = "return"
)

// LedgerRecord is a dated financial event against a client's account.
// Amounts follow a single sign convention enforced at construction time by
// NormalizeLedgerAmount: sales and balance adjustments are stored as
// entered, payments, credit notes and returns are stored negative.
type LedgerRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Seq       int64              `json:"seq" bson:"seq"` // monotonic sync cursor key
	Date      time.Time          `json:"date" bson:"date"`
	SubjectID primitive.ObjectID `json:"subjectId" bson:"subjectId"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	Kind      string             `json:"kind" bson:"kind"`
	Amount    float64            `json:"amount" bson:"amount"`
	Document  string             `json:"document,omitempty" bson:"document,omitempty"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidLedgerKind reports whether kind is one of the closed set.
func ValidLedgerKind(kind string) bool {
	switch kind {
	case KindSale, KindPayment, KindCreditNote, KindBalanceAdjustment, KindReturn:
		return true
	}
	return false
}

// NormalizeLedgerAmount applies the canonical sign convention for a record
// kind. The source system negated payment-like amounts inconsistently
// across call paths; here the rule lives in exactly one place:
//   - sale, adjustment: stored as entered
//   - payment, credit_note, return: stored as negative absolute value
func NormalizeLedgerAmount(kind string, amount float64) float64 {
	switch kind {
	case KindPayment, KindCreditNote, KindReturn:
		return -math.Abs(amount)
	}
	return amount
}

// CreateLedgerRecordRequest is the body for creating a ledger record
type CreateLedgerRecordRequest struct {
	Date      string  `json:"date" validate:"required"` // YYYY-MM-DD
	SubjectID string  `json:"subjectId" validate:"required"`
	Kind      string  `json:"kind" validate:"required,oneof=sale payment credit_note adjustment return"`
	Amount    float64 `json:"amount" validate:"required"`
	Document  string  `json:"document"`
	Comment   string  `json:"comment"`
}

// UpdateLedgerRecordRequest carries partial updates to a ledger record
type UpdateLedgerRecordRequest struct {
	Date     *string  `json:"date,omitempty"`
	Kind     *string  `json:"kind,omitempty" validate:"omitempty,oneof=sale payment credit_note adjustment return"`
	Amount   *float64 `json:"amount,omitempty"`
	Document *string  `json:"document,omitempty"`
	Comment  *string  `json:"comment,omitempty"`
}

// LedgerSyncResult is the response of the full-fetch sync endpoint.
// Incomplete is true when the page budget ran out before the end of the
// collection was reached, so the result may be truncated.
type LedgerSyncResult struct {
	Records    []LedgerRecord `json:"records"`
	Incomplete bool           `json:"incomplete"`
	Pages      int            `json:"pages"`
}
