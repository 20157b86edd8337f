package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateWhitelistedEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.WhitelistedEmail, error) {
	query := `
		INSERT INTO whitelisted_emails (email)
		VALUES ($1)
		RETURNING id, email, created_at, updated_at
	`
	var w models.WhitelistedEmail
	err := pool.QueryRow(ctx, query, email).Scan(&w.ID, &w.Email, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func GetAllWhitelistedEmails(ctx context.Context, pool *pgxpool.Pool) ([]models.WhitelistedEmail, error) {
	query := `SELECT id, email, created_at, updated_at FROM whitelisted_emails ORDER BY id`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []models.WhitelistedEmail
	for rows.Next() {
		var w models.WhitelistedEmail
		if err := rows.Scan(&w.ID, &w.Email, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		emails = append(emails, w)
	}
	return emails, rows.Err()
}

// IsEmailWhitelisted does the invite check during registration without
// pulling the whole table into memory.
func IsEmailWhitelisted(ctx context.Context, pool *pgxpool.Pool, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM whitelisted_emails WHERE LOWER(email) = LOWER($1))`
	var exists bool
	if err := pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func DeleteWhitelistedEmail(ctx context.Context, pool *pgxpool.Pool, id int64) error {
	query := `DELETE FROM whitelisted_emails WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("whitelisted email not found")
	}
	return nil
}
