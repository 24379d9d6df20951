package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLedgerAmount(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		amount float64
		want   float64
	}{
		{"payment entered positive", KindPayment, 50, -50},
		{"payment entered negative", KindPayment, -50, -50},
		{"credit note entered positive", KindCreditNote, 10, -10},
		{"return entered positive", KindReturn, 30, -30},
		{"return entered negative", KindReturn, -30, -30},
		{"sale stays as entered", KindSale, 100, 100},
		{"adjustment keeps its sign", KindBalanceAdjustment, -25, -25},
		{"positive adjustment stays positive", KindBalanceAdjustment, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLedgerAmount(tt.kind, tt.amount))
		})
	}
}

func TestValidLedgerKind(t *testing.T) {
	for _, kind := range []string{KindSale, KindPayment, KindCreditNote, KindBalanceAdjustment, KindReturn} {
		assert.True(t, ValidLedgerKind(kind), kind)
	}
	assert.False(t, ValidLedgerKind(""))
	assert.False(t, ValidLedgerKind("refund"))
	assert.False(t, ValidLedgerKind("Sale"))
}
