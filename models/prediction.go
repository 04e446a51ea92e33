package models

import (
	"encoding/json"
	"time"
)

// Transaction is a read-only input row from the transactions table. The
// dashboard never mutates transactions; they only feed trend derivation.
type Transaction struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Amount   float64   `json:"amount"`
	Type     string    `json:"type"` // "income" or "expense"
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Notes    string    `json:"notes,omitempty"`
}

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// TrendResult holds the three percentage deltas for the trailing window,
// each clamped to [-15, 15] and rounded to one decimal place.
type TrendResult struct {
	IncomeTrendPct  float64 `json:"income_trend_pct"`
	ExpenseTrendPct float64 `json:"expense_trend_pct"`
	SavingsTrendPct float64 `json:"savings_trend_pct"`
}

type Prediction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Timeframe   string          `json:"timeframe"` // months_3, months_6, year_1
	Payload     json.RawMessage `json:"payload"`
	Confidence  float64         `json:"confidence"`
	GeneratedAt time.Time       `json:"generated_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	UserName    string          `json:"user_name"` // From the users JOIN
}

// ============================================================================
// USAGE TRACKING
// ============================================================================

type UsageStatus struct {
	UserID       string    `json:"user_id"`
	CurrentUsage int       `json:"current_usage"`
	MaxUsage     int       `json:"max_usage"`
	ResetDate    time.Time `json:"reset_date"`
	Exceeded     bool      `json:"exceeded"`
	Remaining    int       `json:"remaining"`
}

type UsageStatistics struct {
	TotalUsers        int     `json:"total_users"`
	AverageUsage      float64 `json:"average_usage"`
	UsersAtLimit      int     `json:"users_at_limit"`
	UsersOverLimit    int     `json:"users_over_limit"`
	UsersNeedingReset int     `json:"users_needing_reset"`
	MaxUsagePerUser   int     `json:"max_usage_per_user"`
}

// AIInsight is one generated observation about a user's spending trends.
type AIInsight struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation,omitempty"`
}
