package db

import (
	"centsible-server/src/db"
	"centsible-server/src/insights"
	"centsible-server/src/models"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO budgets (user_id, name, amount)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, amount, created_at, updated_at
	`
	var b models.Budget
	err = tx.QueryRow(ctx, query, budget.UserID, budget.Name, budget.Amount).
		Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	b.Allocations, err = insertAllocations(ctx, tx, b.ID, budget.Allocations)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	db.ClearAllSummaryCaches()
	return &b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, name, amount, created_at, updated_at
		FROM budgets WHERE id = $1 AND user_id = $2
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budgetID, userID).
		Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	b.Allocations, err = getAllocations(ctx, pool, b.ID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, name, amount, created_at, updated_at
		FROM budgets WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		budgets[i].Allocations, err = getAllocations(ctx, pool, budgets[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// UpdateBudget rewrites the budget row and replaces its allocations in one
// transaction.
func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE budgets
		SET name = $1, amount = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, name, amount, created_at, updated_at
	`
	var b models.Budget
	err = tx.QueryRow(ctx, query, budget.Name, budget.Amount, budget.ID, budget.UserID).
		Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM budget_allocations WHERE budget_id = $1`, b.ID); err != nil {
		return nil, err
	}
	b.Allocations, err = insertAllocations(ctx, tx, b.ID, budget.Allocations)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	db.ClearAllSummaryCaches()
	return &b, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("budget not found")
	}
	db.ClearAllSummaryCaches()
	return nil
}

// GetBudgetSummary compares each allocation's amount against actual spend
// for the month containing date. Summaries are cached per budget and month;
// expense and budget writes clear the cache.
func GetBudgetSummary(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int, month time.Time) (*models.BudgetSummary, error) {
	monthKey := month.Format("2006-01")
	cacheKey := fmt.Sprintf("summary:%d:%d:%s", userID, budgetID, monthKey)
	if cached, found := db.Cache.Get(cacheKey); found {
		if summary, ok := cached.(*models.BudgetSummary); ok {
			return summary, nil
		}
	}

	budget, err := GetBudgetByID(ctx, pool, userID, budgetID)
	if err != nil {
		return nil, err
	}
	spend, err := MonthlySpendByCategory(ctx, pool, userID, month)
	if err != nil {
		return nil, err
	}

	allocs := make([]insights.AllocationInput, 0, len(budget.Allocations))
	for _, a := range budget.Allocations {
		allocs = append(allocs, insights.AllocationInput{CategoryID: a.CategoryID, Percent: a.Percent})
	}
	amounts := insights.AllocatedAmounts(budget.Amount, allocs)

	summary := &models.BudgetSummary{
		BudgetID:           budget.ID,
		Month:              monthKey,
		Amount:             budget.Amount,
		UnallocatedPercent: insights.UnallocatedPercent(allocs),
	}
	for _, a := range amounts {
		category, err := GetCategoryByID(ctx, pool, userID, a.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %d: %w", a.CategoryID, err)
		}
		spent := spend[a.CategoryID]
		summary.Lines = append(summary.Lines, models.BudgetSummaryLine{
			CategoryID:   a.CategoryID,
			CategoryName: category.Name,
			Percent:      a.Percent,
			Allocated:    a.Amount,
			Spent:        spent,
			Remaining:    a.Amount - spent,
		})
	}

	db.SetSummaryCache(cacheKey, summary)
	return summary, nil
}

func insertAllocations(ctx context.Context, tx pgx.Tx, budgetID int, allocs []models.BudgetAllocation) ([]models.BudgetAllocation, error) {
	out := make([]models.BudgetAllocation, 0, len(allocs))
	for _, a := range allocs {
		query := `
			INSERT INTO budget_allocations (budget_id, category_id, percent)
			VALUES ($1, $2, $3)
			RETURNING id, budget_id, category_id, percent
		`
		var row models.BudgetAllocation
		err := tx.QueryRow(ctx, query, budgetID, a.CategoryID, a.Percent).
			Scan(&row.ID, &row.BudgetID, &row.CategoryID, &row.Percent)
		if err != nil {
			return nil, fmt.Errorf("failed to insert allocation: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}

func getAllocations(ctx context.Context, pool *pgxpool.Pool, budgetID int) ([]models.BudgetAllocation, error) {
	query := `
		SELECT id, budget_id, category_id, percent
		FROM budget_allocations
		WHERE budget_id = $1
		ORDER BY id
	`
	rows, err := pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocs []models.BudgetAllocation
	for rows.Next() {
		var a models.BudgetAllocation
		if err := rows.Scan(&a.ID, &a.BudgetID, &a.CategoryID, &a.Percent); err != nil {
			return nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, rows.Err()
}
