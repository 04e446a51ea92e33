package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/budgetme/admin-api/models"

	"github.com/google/uuid"
)

type GoalService struct {
	db   *sql.DB
	feed *ChangeFeed
}

func NewGoalService(db *sql.DB, feed *ChangeFeed) *GoalService {
	return &GoalService{db: db, feed: feed}
}

func (s *GoalService) Create(ctx context.Context, req models.CreateGoalRequest, actor string) (*models.Goal, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	goal := &models.Goal{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		GoalName:      req.GoalName,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    req.TargetDate,
		Priority:      priority,
		Status:        "in_progress",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	query := `
		INSERT INTO goals (id, user_id, goal_name, target_amount, current_amount, target_date, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.GoalName, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.Priority, goal.Status, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionCreated, ID: goal.ID, Actor: actor})
	return goal, nil
}

func (s *GoalService) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	query := `
		SELECT g.id, g.user_id, g.goal_name, g.target_amount, g.current_amount,
		       g.target_date, g.priority, g.status, g.created_at, g.updated_at,
		       COALESCE(u.name, '') as user_name
		FROM goals g
		LEFT JOIN users u ON g.user_id = u.id
		WHERE g.id = $1
	`

	var goal models.Goal
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.GoalName,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Priority,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
		&goal.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// List returns every goal with the owner's display name joined in. Filtering,
// sorting and paging happen in the handler via ApplyFilters.
func (s *GoalService) List(ctx context.Context) ([]models.Goal, error) {
	query := `
		SELECT g.id, g.user_id, g.goal_name, g.target_amount, g.current_amount,
		       g.target_date, g.priority, g.status, g.created_at, g.updated_at,
		       COALESCE(u.name, '') as user_name
		FROM goals g
		LEFT JOIN users u ON g.user_id = u.id
		ORDER BY g.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.GoalName,
			&goal.TargetAmount,
			&goal.CurrentAmount,
			&goal.TargetDate,
			&goal.Priority,
			&goal.Status,
			&goal.CreatedAt,
			&goal.UpdatedAt,
			&goal.UserName,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

func (s *GoalService) Update(ctx context.Context, id string, req models.UpdateGoalRequest, actor string) error {
	status := req.Status
	if status == "" {
		status = "in_progress"
	}
	if req.CurrentAmount >= req.TargetAmount {
		status = "completed"
	}

	query := `
		UPDATE goals
		SET goal_name = $1, target_amount = $2, current_amount = $3,
		    target_date = $4, priority = COALESCE(NULLIF($5, ''), priority),
		    status = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		req.GoalName, req.TargetAmount, req.CurrentAmount,
		req.TargetDate, req.Priority, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionUpdated, ID: id, Actor: actor})
	return nil
}

func (s *GoalService) Delete(ctx context.Context, id, actor string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionDeleted, ID: id, Actor: actor})
	return nil
}
