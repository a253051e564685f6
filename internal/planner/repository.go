package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is a database-backed store for meal plans. The plan body is
// kept as a JSON document; the window and owner are lifted into columns for
// querying.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new meal plan repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a new meal plan.
func (r *Repository) Save(ctx context.Context, plan *MealPlan, window PlanWindow) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_id, start_date, end_date, plan_data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.UserID, window.Start, window.End, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return nil
}

// GetByID retrieves a meal plan, scoped to its owner.
func (r *Repository) GetByID(ctx context.Context, id, userID string) (*MealPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT plan_data FROM meal_plans WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan %s: %w", id, err)
	}

	var plan MealPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan %s: %w", id, err)
	}
	return &plan, nil
}

// Delete removes a meal plan, scoped to its owner.
func (r *Repository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM meal_plans WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecentByUserID retrieves the N most recent meal plans for a user.
func (r *Repository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*MealPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT plan_data FROM meal_plans WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []*MealPlan
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		var plan MealPlan
		if err := json.Unmarshal([]byte(data), &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meal plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}
