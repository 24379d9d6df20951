package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestioncomercial/gestion_backend/models"
)

func rec(kind string, amount float64, date time.Time) models.LedgerRecord {
	return models.LedgerRecord{
		ID:     primitive.NewObjectID(),
		Kind:   kind,
		Amount: amount,
		Date:   date,
	}
}

func TestRunningBalance(t *testing.T) {
	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	records := []models.LedgerRecord{
		rec(models.KindSale, 500, march),
		rec(models.KindPayment, -200, march),
	}

	assert.Equal(t, 300.0, RunningBalance(records))
	assert.Equal(t, 0.0, RunningBalance(nil))
}

func TestMonthlyNetAndCollections(t *testing.T) {
	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)

	records := []models.LedgerRecord{
		rec(models.KindSale, 100, march),
		rec(models.KindReturn, -30, march),
		rec(models.KindPayment, -20, march),
		rec(models.KindCreditNote, -15, march),
		// outside the month, must not count
		rec(models.KindSale, 999, april),
		rec(models.KindPayment, -999, april),
	}

	// net sales = sales - |returns|; payments and credit notes excluded
	assert.Equal(t, 70.0, MonthlyNet(records, 2026, time.March))
	// collections = |payments| + |credit notes|
	assert.Equal(t, 35.0, MonthlyCollections(records, 2026, time.March))

	assert.Equal(t, 0.0, MonthlyNet(records, 2025, time.March))
	assert.Equal(t, 0.0, MonthlyCollections(records, 2026, time.February))
}

func TestYearlySummary(t *testing.T) {
	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	records := []models.LedgerRecord{
		rec(models.KindSale, 200, jan),
		rec(models.KindReturn, -50, jan),
		rec(models.KindPayment, -80, jun),
		rec(models.KindSale, 100, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}

	summary := YearlySummary(records, 2026)
	require.Len(t, summary, 12)

	assert.Equal(t, time.January, summary[0].Month)
	assert.Equal(t, 150.0, summary[0].Net)
	assert.Equal(t, 0.0, summary[0].Collections)

	assert.Equal(t, time.June, summary[5].Month)
	assert.Equal(t, 0.0, summary[5].Net)
	assert.Equal(t, 80.0, summary[5].Collections)

	// months without activity come back zeroed
	assert.Equal(t, 0.0, summary[11].Net)
	assert.Equal(t, 0.0, summary[11].Collections)
}

func TestBalancesByOwnerAndSubject(t *testing.T) {
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	clientX := primitive.NewObjectID()

	records := []models.LedgerRecord{
		{OwnerID: ownerA, SubjectID: clientX, Kind: models.KindSale, Amount: 100, Date: march},
		{OwnerID: ownerA, SubjectID: clientX, Kind: models.KindPayment, Amount: -40, Date: march},
		{OwnerID: ownerB, SubjectID: primitive.NewObjectID(), Kind: models.KindSale, Amount: 25, Date: march},
	}

	byOwner := BalancesByOwner(records)
	assert.Equal(t, 60.0, byOwner[ownerA.Hex()])
	assert.Equal(t, 25.0, byOwner[ownerB.Hex()])

	bySubject := BalancesBySubject(records)
	assert.Equal(t, 60.0, bySubject[clientX.Hex()])
}

func TestCommissionBase(t *testing.T) {
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	records := []models.LedgerRecord{
		rec(models.KindSale, 1000, march),
		rec(models.KindPayment, -400, march),
		rec(models.KindCreditNote, -50, march),
		rec(models.KindReturn, -30, march),
	}

	t.Run("sales basis", func(t *testing.T) {
		base, contributing := CommissionBase(records, models.CommissionBasisSales)
		assert.Equal(t, 1000.0, base)
		require.Len(t, contributing, 1)
		assert.Equal(t, models.KindSale, contributing[0].Kind)
	})

	t.Run("payments basis uses absolute values", func(t *testing.T) {
		base, contributing := CommissionBase(records, models.CommissionBasisPayments)
		assert.Equal(t, 400.0, base)
		require.Len(t, contributing, 1)
		assert.Equal(t, models.KindPayment, contributing[0].Kind)
	})

	t.Run("both basis", func(t *testing.T) {
		base, contributing := CommissionBase(records, models.CommissionBasisBoth)
		assert.Equal(t, 1400.0, base)
		assert.Len(t, contributing, 2)
	})
}
