package services

import (
	"context"
	"database/sql"
	"log"
	"math"
	"time"

	"github.com/budgetme/admin-api/models"
)

// DefaultMaxPredictions is the monthly prediction quota per user.
const DefaultMaxPredictions = 5

// Usage counters reset on a rolling 30-day window.
const usageResetWindow = 30 * 24 * time.Hour

// UsageService tracks per-user prediction quotas with monthly reset.
type UsageService struct {
	db       *sql.DB
	maxUsage int
}

func NewUsageService(db *sql.DB, maxUsage int) *UsageService {
	if maxUsage <= 0 {
		maxUsage = DefaultMaxPredictions
	}
	return &UsageService{db: db, maxUsage: maxUsage}
}

// GetUserUsage returns the current usage status, initializing a record for
// new users and resetting expired windows on read.
func (s *UsageService) GetUserUsage(ctx context.Context, userID string) (*models.UsageStatus, error) {
	var usageCount, maxUsage int
	var resetDate time.Time

	query := `SELECT usage_count, max_usage, reset_date FROM prediction_usage WHERE user_id = $1`
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&usageCount, &maxUsage, &resetDate)

	if err == sql.ErrNoRows {
		if err := s.initializeUser(ctx, userID); err != nil {
			return nil, err
		}
		return &models.UsageStatus{
			UserID:    userID,
			MaxUsage:  s.maxUsage,
			ResetDate: time.Now().Add(usageResetWindow),
			Remaining: s.maxUsage,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(resetDate) {
		if err := s.resetUser(ctx, userID); err != nil {
			return nil, err
		}
		usageCount = 0
		resetDate = time.Now().Add(usageResetWindow)
	}

	remaining := maxUsage - usageCount
	if remaining < 0 {
		remaining = 0
	}

	return &models.UsageStatus{
		UserID:       userID,
		CurrentUsage: usageCount,
		MaxUsage:     maxUsage,
		ResetDate:    resetDate,
		Exceeded:     usageCount >= maxUsage,
		Remaining:    remaining,
	}, nil
}

// Increment bumps the usage counter. When the increment would exceed the
// quota the counter is left untouched and the current status is returned.
func (s *UsageService) Increment(ctx context.Context, userID string) (*models.UsageStatus, error) {
	status, err := s.GetUserUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	newUsage := status.CurrentUsage + 1
	if newUsage > status.MaxUsage {
		log.Printf("⚠️ Usage increment would exceed limit for user %s", userID)
		return status, nil
	}

	query := `UPDATE prediction_usage SET usage_count = $1, updated_at = NOW() WHERE user_id = $2`
	if _, err := s.db.ExecContext(ctx, query, newUsage, userID); err != nil {
		return nil, err
	}

	status.CurrentUsage = newUsage
	status.Exceeded = newUsage >= status.MaxUsage
	status.Remaining = status.MaxUsage - newUsage
	if status.Remaining < 0 {
		status.Remaining = 0
	}
	return status, nil
}

// CheckLimit reports whether the user may run another prediction. Lookup
// failures default to allowing the request.
func (s *UsageService) CheckLimit(ctx context.Context, userID string) bool {
	status, err := s.GetUserUsage(ctx, userID)
	if err != nil {
		log.Printf("❌ Usage check failed for %s: %v", userID, err)
		return true
	}
	return !status.Exceeded
}

// ResetUser zeroes the counter for one user (admin operation).
func (s *UsageService) ResetUser(ctx context.Context, userID string) (*models.UsageStatus, error) {
	if err := s.resetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetUserUsage(ctx, userID)
}

// CleanupExpired resets every user whose window has lapsed and returns the
// number of rows touched.
func (s *UsageService) CleanupExpired(ctx context.Context) (int, error) {
	query := `
		UPDATE prediction_usage
		SET usage_count = 0, reset_date = $1, updated_at = NOW()
		WHERE reset_date < NOW()
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().Add(usageResetWindow))
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// Statistics aggregates usage counters across all users.
func (s *UsageService) Statistics(ctx context.Context) (*models.UsageStatistics, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(usage_count), 0),
		       COUNT(*) FILTER (WHERE usage_count >= max_usage),
		       COUNT(*) FILTER (WHERE usage_count > max_usage),
		       COUNT(*) FILTER (WHERE reset_date < NOW())
		FROM prediction_usage
	`

	stats := &models.UsageStatistics{MaxUsagePerUser: s.maxUsage}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.AverageUsage,
		&stats.UsersAtLimit,
		&stats.UsersOverLimit,
		&stats.UsersNeedingReset,
	)
	if err != nil {
		return nil, err
	}

	stats.AverageUsage = math.Round(stats.AverageUsage*100) / 100
	return stats, nil
}

func (s *UsageService) initializeUser(ctx context.Context, userID string) error {
	query := `
		INSERT INTO prediction_usage (user_id, usage_count, max_usage, reset_date, created_at, updated_at)
		VALUES ($1, 0, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, s.maxUsage, time.Now().Add(usageResetWindow))
	return err
}

func (s *UsageService) resetUser(ctx context.Context, userID string) error {
	query := `
		UPDATE prediction_usage
		SET usage_count = 0, reset_date = $1, updated_at = NOW()
		WHERE user_id = $2
	`
	_, err := s.db.ExecContext(ctx, query, time.Now().Add(usageResetWindow), userID)
	return err
}
