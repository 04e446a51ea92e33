package services

import (
	"testing"
	"time"

	"github.com/budgetme/admin-api/models"
)

func tx(userID string, amount float64, txType string, date time.Time) models.Transaction {
	return models.Transaction{UserID: userID, Amount: amount, Type: txType, Date: date}
}

func TestComputeTrends_EmptyInput(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	result := ComputeTrends(nil, asOf)

	if result != (models.TrendResult{}) {
		t.Errorf("expected zero trends for empty input, got %+v", result)
	}
}

func TestComputeTrends_SingleMonth(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		tx("u1", 400, models.TransactionExpense, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result != (models.TrendResult{}) {
		t.Errorf("expected zero trends with a single month, got %+v", result)
	}
}

func TestComputeTrends_TwoMonths(t *testing.T) {
	// Baseline month: income 1000, expenses 600 (savings 400).
	// Current month: income 1100, expenses 600 (savings 500).
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 600, models.TransactionExpense, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1100, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 600, models.TransactionExpense, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != 10.0 {
		t.Errorf("income trend = %v, want 10.0", result.IncomeTrendPct)
	}
	if result.ExpenseTrendPct != 0.0 {
		t.Errorf("expense trend = %v, want 0.0", result.ExpenseTrendPct)
	}
	// Savings grew 400 -> 500 = +25%, clamped to +15.
	if result.SavingsTrendPct != 15.0 {
		t.Errorf("savings trend = %v, want 15.0 (clamped)", result.SavingsTrendPct)
	}
}

func TestComputeTrends_ClampLowerBound(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 100, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != -15.0 {
		t.Errorf("income trend = %v, want -15.0 (clamped)", result.IncomeTrendPct)
	}
}

func TestComputeTrends_ZeroBaseline(t *testing.T) {
	// Baseline month has expenses only, so baseline income and savings... income
	// average is 0 and must not divide. Savings baseline is -500 (non-zero).
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 500, models.TransactionExpense, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 800, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != 0 {
		t.Errorf("income trend with zero baseline = %v, want 0", result.IncomeTrendPct)
	}
	// Savings: baseline -500, current +800 -> +260%, clamped.
	if result.SavingsTrendPct != 15.0 {
		t.Errorf("savings trend = %v, want 15.0", result.SavingsTrendPct)
	}
}

func TestComputeTrends_OldTransactionsIgnored(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		// Well outside the 3-month window; must not create a bucket.
		tx("u1", 9999, models.TransactionIncome, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result != (models.TrendResult{}) {
		t.Errorf("expected zero trends (one in-window month), got %+v", result)
	}
}

func TestComputeTrends_FutureTransactionsIgnored(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1100, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 5000, models.TransactionIncome, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != 10.0 {
		t.Errorf("income trend = %v, want 10.0 (future month ignored)", result.IncomeTrendPct)
	}
}

func TestComputeTrends_Idempotent(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 1000, models.TransactionIncome, time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 700, models.TransactionExpense, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1050, models.TransactionIncome, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
	}

	first := ComputeTrends(txs, asOf)
	second := ComputeTrends(txs, asOf)

	if first != second {
		t.Errorf("same inputs produced different results: %+v vs %+v", first, second)
	}
}

func TestComputeTrends_OutputAlwaysInRange(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	cases := [][]models.Transaction{
		{
			tx("u1", 1, models.TransactionIncome, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
			tx("u1", 100000, models.TransactionIncome, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			tx("u1", 100000, models.TransactionExpense, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
			tx("u1", 1, models.TransactionExpense, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			tx("u1", -500, models.TransactionIncome, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
			tx("u1", 500, models.TransactionIncome, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	for i, txs := range cases {
		result := ComputeTrends(txs, asOf)
		for name, pct := range map[string]float64{
			"income":  result.IncomeTrendPct,
			"expense": result.ExpenseTrendPct,
			"savings": result.SavingsTrendPct,
		} {
			if pct < -TrendClampPct || pct > TrendClampPct {
				t.Errorf("case %d: %s trend %v outside [-15, 15]", i, name, pct)
			}
		}
	}
}

func TestComputeTrends_RoundsToOneDecimal(t *testing.T) {
	// Baseline income 300, current 310 -> +3.3333...% rounds to 3.3.
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 300, models.TransactionIncome, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx("u1", 310, models.TransactionIncome, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != 3.3 {
		t.Errorf("income trend = %v, want 3.3", result.IncomeTrendPct)
	}
}

func TestComputeTrends_MultiMonthBaseline(t *testing.T) {
	// Baseline months: income 900 and 1100 (avg 1000). Current: 1100 -> +10%.
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("u1", 900, models.TransactionIncome, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1100, models.TransactionIncome, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx("u1", 1100, models.TransactionIncome, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	}

	result := ComputeTrends(txs, asOf)

	if result.IncomeTrendPct != 10.0 {
		t.Errorf("income trend = %v, want 10.0", result.IncomeTrendPct)
	}
}
