package db

import (
	"centsible-server/src/db"
	"centsible-server/src/models"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `id, user_id, kind, amount, merchant, note, tag, location, category_id, date, created_at, updated_at`

func CreateExpense(ctx context.Context, pool *pgxpool.Pool, e *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, kind, amount, merchant, note, tag, location, category_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns
	var out models.Expense
	err := pool.QueryRow(ctx, query,
		e.UserID, e.Kind, e.Amount, e.Merchant, e.Note, e.Tag, e.Location, e.CategoryID, e.Date).
		Scan(&out.ID, &out.UserID, &out.Kind, &out.Amount, &out.Merchant, &out.Note, &out.Tag,
			&out.Location, &out.CategoryID, &out.Date, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	db.ClearAllSummaryCaches()
	return &out, nil
}

func GetExpenseByID(ctx context.Context, pool *pgxpool.Pool, userID, expenseID int) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`
	var out models.Expense
	err := pool.QueryRow(ctx, query, expenseID, userID).
		Scan(&out.ID, &out.UserID, &out.Kind, &out.Amount, &out.Merchant, &out.Note, &out.Tag,
			&out.Location, &out.CategoryID, &out.Date, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExpenseFilter narrows GetAllExpensesForUser. Zero values mean "no filter".
type ExpenseFilter struct {
	Kind       string
	CategoryID int
	Month      time.Time // any day in the month to filter to
}

func GetAllExpensesForUser(ctx context.Context, pool *pgxpool.Pool, userID int, filter ExpenseFilter) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if !filter.Month.IsZero() {
		monthStart := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		args = append(args, monthStart)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
		args = append(args, monthStart.AddDate(0, 1, 0))
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Merchant, &e.Note, &e.Tag,
			&e.Location, &e.CategoryID, &e.Date, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func UpdateExpense(ctx context.Context, pool *pgxpool.Pool, e *models.Expense) (*models.Expense, error) {
	query := `
		UPDATE expenses
		SET kind = $1, amount = $2, merchant = $3, note = $4, tag = $5, location = $6,
		    category_id = $7, date = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING ` + expenseColumns
	var out models.Expense
	err := pool.QueryRow(ctx, query,
		e.Kind, e.Amount, e.Merchant, e.Note, e.Tag, e.Location, e.CategoryID, e.Date, e.ID, e.UserID).
		Scan(&out.ID, &out.UserID, &out.Kind, &out.Amount, &out.Merchant, &out.Note, &out.Tag,
			&out.Location, &out.CategoryID, &out.Date, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	db.ClearAllSummaryCaches()
	return &out, nil
}

func DeleteExpense(ctx context.Context, pool *pgxpool.Pool, userID, expenseID int) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, expenseID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("expense not found")
	}
	db.ClearAllSummaryCaches()
	return nil
}

// MonthlySpendByCategory sums expense amounts per category for the month
// containing the given date. Income rows are excluded.
func MonthlySpendByCategory(ctx context.Context, pool *pgxpool.Pool, userID int, month time.Time) (map[int]float64, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT category_id, SUM(amount)
		FROM expenses
		WHERE user_id = $1 AND kind = 'expense' AND category_id IS NOT NULL
		  AND date >= $2 AND date < $3
		GROUP BY category_id
	`
	rows, err := pool.Query(ctx, query, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spend := make(map[int]float64)
	for rows.Next() {
		var categoryID int
		var total float64
		if err := rows.Scan(&categoryID, &total); err != nil {
			return nil, err
		}
		spend[categoryID] = total
	}
	return spend, rows.Err()
}
