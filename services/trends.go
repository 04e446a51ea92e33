package services

import (
	"math"
	"sort"
	"time"

	"github.com/budgetme/admin-api/models"
)

// Trend percentages are clamped to +/-15% before display so a single unusual
// month cannot blow up the dashboard gauges.
const TrendClampPct = 15.0

type monthlyBucket struct {
	income   float64
	expenses float64
}

// ComputeTrends derives income/expense/savings trend percentages from a single
// user's transactions. The most recent calendar month inside the trailing
// 3-month window is compared against the average of the earlier months. With
// fewer than two distinct months in the window there is no baseline to compare
// against and the result is all zeros. The function is pure: it performs no
// I/O and always returns a result.
func ComputeTrends(transactions []models.Transaction, asOf time.Time) models.TrendResult {
	windowStart := asOf.AddDate(0, -3, 0)

	buckets := make(map[string]*monthlyBucket)
	for _, tx := range transactions {
		if tx.Date.Before(windowStart) || tx.Date.After(asOf) {
			continue
		}
		key := tx.Date.Format("2006-01")
		b := buckets[key]
		if b == nil {
			b = &monthlyBucket{}
			buckets[key] = b
		}
		switch tx.Type {
		case models.TransactionIncome:
			b.income += tx.Amount
		case models.TransactionExpense:
			b.expenses += tx.Amount
		}
	}

	if len(buckets) < 2 {
		return models.TrendResult{}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// YYYY-MM keys sort lexicographically into chronological order.
	sort.Strings(keys)

	current := buckets[keys[len(keys)-1]]

	var avgIncome, avgExpense, avgSavings float64
	baseline := keys[:len(keys)-1]
	for _, k := range baseline {
		b := buckets[k]
		avgIncome += b.income
		avgExpense += b.expenses
		avgSavings += b.income - b.expenses
	}
	n := float64(len(baseline))
	avgIncome /= n
	avgExpense /= n
	avgSavings /= n

	return models.TrendResult{
		IncomeTrendPct:  trendPct(current.income, avgIncome),
		ExpenseTrendPct: trendPct(current.expenses, avgExpense),
		SavingsTrendPct: trendPct(current.income-current.expenses, avgSavings),
	}
}

// trendPct computes the clamped percentage delta of current against a baseline
// average. A zero baseline means "no trend", never a division by zero.
func trendPct(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	pct := (current - baseline) / math.Abs(baseline) * 100
	if pct > TrendClampPct {
		pct = TrendClampPct
	} else if pct < -TrendClampPct {
		pct = -TrendClampPct
	}
	return math.Round(pct*10) / 10
}
