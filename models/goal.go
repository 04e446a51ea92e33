package models

import "time"

type Goal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	GoalName      string     `json:"goal_name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UserName      string     `json:"user_name"` // From the users JOIN
}

// ProgressPct reports completion against the target, capped at 100.
func (g Goal) ProgressPct() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := g.CurrentAmount / g.TargetAmount * 100
	if pct > 100 {
		return 100
	}
	return pct
}

type CreateGoalRequest struct {
	UserID        string     `json:"user_id" binding:"required"`
	GoalName      string     `json:"goal_name" binding:"required"`
	TargetAmount  float64    `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date"`
	Priority      string     `json:"priority"`
}

type UpdateGoalRequest struct {
	GoalName      string     `json:"goal_name" binding:"required"`
	TargetAmount  float64    `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
}
