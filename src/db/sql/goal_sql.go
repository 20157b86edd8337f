package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const goalColumns = `id, user_id, name, target_amount, saved_amount, target_date, category_id, created_at, updated_at`

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, g *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, target_amount, saved_amount, target_date, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + goalColumns
	var out models.Goal
	err := pool.QueryRow(ctx, query,
		g.UserID, g.Name, g.TargetAmount, g.SavedAmount, g.TargetDate, g.CategoryID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TargetAmount, &out.SavedAmount,
			&out.TargetDate, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetGoalByID(ctx context.Context, pool *pgxpool.Pool, userID, goalID int) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	var out models.Goal
	err := pool.QueryRow(ctx, query, goalID, userID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TargetAmount, &out.SavedAmount,
			&out.TargetDate, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetAllGoalsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
			&g.TargetDate, &g.CategoryID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, g *models.Goal) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, saved_amount = $3, target_date = $4, category_id = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + goalColumns
	var out models.Goal
	err := pool.QueryRow(ctx, query,
		g.Name, g.TargetAmount, g.SavedAmount, g.TargetDate, g.CategoryID, g.ID, g.UserID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TargetAmount, &out.SavedAmount,
			&out.TargetDate, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddGoalContribution adds amount to the goal's saved total.
func AddGoalContribution(ctx context.Context, pool *pgxpool.Pool, userID, goalID int, amount float64) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET saved_amount = saved_amount + $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + goalColumns
	var out models.Goal
	err := pool.QueryRow(ctx, query, amount, goalID, userID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TargetAmount, &out.SavedAmount,
			&out.TargetDate, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, goalID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
