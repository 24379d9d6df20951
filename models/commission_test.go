package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionPeriodRecalculate(t *testing.T) {
	p := CommissionPeriod{
		Percentage:      10,
		Advances:        20,
		CashInHand:      5,
		OtherDeductions: 0,
	}

	p.Recalculate(1000)

	assert.Equal(t, 1000.0, p.Base)
	assert.Equal(t, 100.0, p.GrossCommission)
	assert.Equal(t, 75.0, p.NetPayable)
}

func TestCommissionPeriodRecalculateZeroBase(t *testing.T) {
	p := CommissionPeriod{Percentage: 10, Advances: 20}

	p.Recalculate(0)

	assert.Equal(t, 0.0, p.GrossCommission)
	// deductions can push the net negative, the period still calculates
	assert.Equal(t, -20.0, p.NetPayable)
}

func TestCommissionPeriodStateGuards(t *testing.T) {
	tests := []struct {
		status       string
		canCalculate bool
		canSettle    bool
	}{
		{PeriodPending, true, false},
		{PeriodCalculated, true, true},
		{PeriodSettled, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := CommissionPeriod{Status: tt.status}
			assert.Equal(t, tt.canCalculate, p.CanCalculate())
			assert.Equal(t, tt.canSettle, p.CanSettle())
		})
	}
}
