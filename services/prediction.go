package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/budgetme/admin-api/models"
)

// PredictionAccuracyPct is the accuracy figure surfaced on the dashboard.
// It is a fixed product constant; no model computes it.
const PredictionAccuracyPct = 95

type PredictionService struct {
	db    *sql.DB
	usage *UsageService
	feed  *ChangeFeed
}

func NewPredictionService(db *sql.DB, usage *UsageService, feed *ChangeFeed) *PredictionService {
	return &PredictionService{db: db, usage: usage, feed: feed}
}

// List returns stored prediction records with the owner's display name.
func (s *PredictionService) List(ctx context.Context) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, p.timeframe, p.payload, p.confidence,
		       p.generated_at, p.expires_at, COALESCE(u.name, '') as user_name
		FROM predictions p
		LEFT JOIN users u ON p.user_id = u.id
		ORDER BY p.generated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Timeframe,
			&p.Payload,
			&p.Confidence,
			&p.GeneratedAt,
			&p.ExpiresAt,
			&p.UserName,
		)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}

func (s *PredictionService) Delete(ctx context.Context, id, actor string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM predictions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TablePredictions, Action: ActionDeleted, ID: id, Actor: actor})
	return nil
}

// PurgeExpired removes prediction records past their expiry and returns the
// number of rows removed.
func (s *PredictionService) PurgeExpired(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM predictions WHERE expires_at < NOW()")
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// UserTransactions loads one user's transactions inside the trend window.
func (s *PredictionService) UserTransactions(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, type, date, category, COALESCE(notes, '')
		FROM transactions
		WHERE user_id = $1 AND date >= $2
		ORDER BY date
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Date, &tx.Category, &tx.Notes)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// UserSummaries assembles the predictions dashboard roster: one row per user,
// identity fields joined with prediction counters, usage and the derived
// trends. A failed transaction fetch degrades that user to zero trends rather
// than failing the whole roster.
func (s *PredictionService) UserSummaries(ctx context.Context, asOf time.Time) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.email, COALESCE(u.avatar, ''),
		       (SELECT COUNT(*) FROM predictions p WHERE p.user_id = u.id) as prediction_count,
		       COALESCE(pu.usage_count, 0), COALESCE(pu.max_usage, $1)
		FROM users u
		LEFT JOIN prediction_usage pu ON pu.user_id = u.id
		ORDER BY u.name
	`

	rows, err := s.db.QueryContext(ctx, query, s.usage.maxUsage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.UserSummary
	for rows.Next() {
		var summary models.UserSummary
		err := rows.Scan(
			&summary.UserID,
			&summary.Name,
			&summary.Email,
			&summary.Avatar,
			&summary.PredictionCount,
			&summary.UsageCount,
			&summary.MaxUsage,
		)
		if err != nil {
			return nil, err
		}
		summary.AccuracyPct = PredictionAccuracyPct
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	windowStart := asOf.AddDate(0, -3, 0)
	for i := range summaries {
		transactions, err := s.UserTransactions(ctx, summaries[i].UserID, windowStart)
		if err != nil {
			log.Printf("❌ Failed to load transactions for %s, defaulting to zero trends: %v", summaries[i].UserID, err)
			transactions = nil
		}
		summaries[i].Trends = ComputeTrends(transactions, asOf)
	}

	return summaries, nil
}
