package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCommissionBasis(t *testing.T) {
	for _, basis := range []string{CommissionBasisSales, CommissionBasisPayments, CommissionBasisBoth} {
		assert.True(t, ValidCommissionBasis(basis), basis)
	}
	assert.False(t, ValidCommissionBasis(""))
	assert.False(t, ValidCommissionBasis("Sales"))
	assert.False(t, ValidCommissionBasis("revenue"))
}
