package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetCategoriesForUser returns the seeded defaults plus the user's own
// categories.
func GetCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY user_id NULLS FIRST, name
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryByID returns a category visible to the user: a default or one
// the user owns.
func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, userID int, name string) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCategory renames a user-owned category. Defaults are read-only.
func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int, name string) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, created_at
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, name, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}
