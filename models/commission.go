package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission period states. The state only advances forward; the single
// reverse transition (settled -> calculated) happens by deleting the
// period's settlement.
const (
	PeriodPending    = "pending"
	PeriodCalculated = "calculated"
	PeriodSettled    = "settled"
)

// CommissionPeriod is a salesperson's commission over a date range.
type CommissionPeriod struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID         primitive.ObjectID  `json:"ownerId" bson:"ownerId"`
	From            time.Time           `json:"from" bson:"from"`
	To              time.Time           `json:"to" bson:"to"`
	Status          string              `json:"status" bson:"status"`
	Base            float64             `json:"base" bson:"base"`
	Percentage      float64             `json:"percentage" bson:"percentage"`
	GrossCommission float64             `json:"grossCommission" bson:"grossCommission"`
	Advances        float64             `json:"advances" bson:"advances"`
	CashInHand      float64             `json:"cashInHand" bson:"cashInHand"`
	OtherDeductions float64             `json:"otherDeductions" bson:"otherDeductions"`
	NetPayable      float64             `json:"netPayable" bson:"netPayable"`
	CalculatedAt    *time.Time          `json:"calculatedAt,omitempty" bson:"calculatedAt,omitempty"`
	SettledAt       *time.Time          `json:"settledAt,omitempty" bson:"settledAt,omitempty"`
	SettlementID    *primitive.ObjectID `json:"settlementId,omitempty" bson:"settlementId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Recalculate fills the computed fields from a commission base.
// gross = base * percentage / 100, net = gross - deductions.
func (p *CommissionPeriod) Recalculate(base float64) {
	p.Base = base
	p.GrossCommission = base * p.Percentage / 100
	p.NetPayable = p.GrossCommission - p.Advances - p.CashInHand - p.OtherDeductions
}

// CanCalculate reports whether the period may be (re)calculated.
// Recalculating an already calculated period is allowed; a settled one is
// frozen until its settlement is deleted.
func (p *CommissionPeriod) CanCalculate() bool {
	return p.Status == PeriodPending || p.Status == PeriodCalculated
}

// CanSettle reports whether a settlement may be generated for the period.
func (p *CommissionPeriod) CanSettle() bool {
	return p.Status == PeriodCalculated
}

// Settlement is the immutable snapshot produced when a calculated period is
// settled: the computed amounts, a generated receipt number and, in
// settlement_details, the ledger records that contributed to the base.
type Settlement struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PeriodID        primitive.ObjectID `json:"periodId" bson:"periodId"`
	OwnerID         primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	ReceiptNumber   string             `json:"receiptNumber" bson:"receiptNumber"`
	Base            float64            `json:"base" bson:"base"`
	Percentage      float64            `json:"percentage" bson:"percentage"`
	GrossCommission float64            `json:"grossCommission" bson:"grossCommission"`
	Advances        float64            `json:"advances" bson:"advances"`
	CashInHand      float64            `json:"cashInHand" bson:"cashInHand"`
	OtherDeductions float64            `json:"otherDeductions" bson:"otherDeductions"`
	NetPayable      float64            `json:"netPayable" bson:"netPayable"`
	IssuedAt        time.Time          `json:"issuedAt" bson:"issuedAt"`
	CreatedBy       primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
}

// SettlementDetail is one contributing ledger record, denormalized so the
// settlement stays readable even if the record is later edited or removed.
type SettlementDetail struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SettlementID   primitive.ObjectID `json:"settlementId" bson:"settlementId"`
	LedgerRecordID primitive.ObjectID `json:"ledgerRecordId" bson:"ledgerRecordId"`
	Date           time.Time          `json:"date" bson:"date"`
	Kind           string             `json:"kind" bson:"kind"`
	Amount         float64            `json:"amount" bson:"amount"`
	Document       string             `json:"document,omitempty" bson:"document,omitempty"`
}

// CreateCommissionPeriodRequest is the body for opening a commission period
type CreateCommissionPeriodRequest struct {
	OwnerID    string  `json:"ownerId" validate:"required"`
	From       string  `json:"from" validate:"required"` // YYYY-MM-DD
	To         string  `json:"to" validate:"required"`   // YYYY-MM-DD
	Advances   float64 `json:"advances" validate:"gte=0"`
	CashInHand float64 `json:"cashInHand" validate:"gte=0"`
	Other      float64 `json:"otherDeductions" validate:"gte=0"`
}
