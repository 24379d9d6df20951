// utils/ledger.go
package utils

import (
	"math"
	"time"

	"github.com/gestioncomercial/gestion_backend/models"
)

// RunningBalance sums the signed amounts of all records. Order-independent.
func RunningBalance(records []models.LedgerRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// MonthlyNet computes net sales for a month: sales minus the absolute value
// of returns. Payments and credit notes are collections, not sales, and are
// excluded here.
func MonthlyNet(records []models.LedgerRecord, year int, month time.Month) float64 {
	var net float64
	for _, r := range records {
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		switch r.Kind {
		case models.KindSale:
			net += r.Amount
		case models.KindReturn:
			net -= math.Abs(r.Amount)
		}
	}
	return net
}

// MonthlyCollections sums the absolute amounts of payments and credit notes
// in a month.
func MonthlyCollections(records []models.LedgerRecord, year int, month time.Month) float64 {
	var total float64
	for _, r := range records {
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		switch r.Kind {
		case models.KindPayment, models.KindCreditNote:
			total += math.Abs(r.Amount)
		}
	}
	return total
}

// MonthSummary is one row of a yearly breakdown.
type MonthSummary struct {
	Month       time.Month `json:"month"`
	Net         float64    `json:"net"`
	Collections float64    `json:"collections"`
}

// YearlySummary returns net sales and collections per month for a year.
// Months without activity are included with zeros.
func YearlySummary(records []models.LedgerRecord, year int) []MonthSummary {
	summary := make([]MonthSummary, 12)
	for i := range summary {
		summary[i].Month = time.Month(i + 1)
	}
	for _, r := range records {
		if r.Date.Year() != year {
			continue
		}
		row := &summary[int(r.Date.Month())-1]
		switch r.Kind {
		case models.KindSale:
			row.Net += r.Amount
		case models.KindReturn:
			row.Net -= math.Abs(r.Amount)
		case models.KindPayment, models.KindCreditNote:
			row.Collections += math.Abs(r.Amount)
		}
	}
	return summary
}

// BalancesByOwner sums signed amounts grouped by owning salesperson,
// keyed by the owner's hex id.
func BalancesByOwner(records []models.LedgerRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.OwnerID.Hex()] += r.Amount
	}
	return totals
}

// BalancesBySubject sums signed amounts grouped by client,
// keyed by the client's hex id.
func BalancesBySubject(records []models.LedgerRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.SubjectID.Hex()] += r.Amount
	}
	return totals
}

// CommissionBase sums the commissionable amounts of records according to a
// salesperson's configured basis and returns the contributing records for
// the settlement detail. Payments enter the base as absolute values; sales
// as entered.
func CommissionBase(records []models.LedgerRecord, basis string) (float64, []models.LedgerRecord) {
	var base float64
	var contributing []models.LedgerRecord
	for _, r := range records {
		switch r.Kind {
		case models.KindSale:
			if basis == models.CommissionBasisSales || basis == models.CommissionBasisBoth {
				base += r.Amount
				contributing = append(contributing, r)
			}
		case models.KindPayment:
			if basis == models.CommissionBasisPayments || basis == models.CommissionBasisBoth {
				base += math.Abs(r.Amount)
				contributing = append(contributing, r)
			}
		}
	}
	return base, contributing
}
