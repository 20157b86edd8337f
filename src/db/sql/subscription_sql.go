package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `id, user_id, name, merchant, amount, billing_cycle, next_billing_date, uses_per_month, is_active, category_id, created_at, updated_at`

func CreateSubscription(ctx context.Context, pool *pgxpool.Pool, s *models.Subscription) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, name, merchant, amount, billing_cycle, next_billing_date, uses_per_month, is_active, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + subscriptionColumns
	var out models.Subscription
	err := pool.QueryRow(ctx, query,
		s.UserID, s.Name, s.Merchant, s.Amount, s.BillingCycle, s.NextBillingDate,
		s.UsesPerMonth, s.IsActive, s.CategoryID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.Merchant, &out.Amount, &out.BillingCycle,
			&out.NextBillingDate, &out.UsesPerMonth, &out.IsActive, &out.CategoryID,
			&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetSubscriptionByID(ctx context.Context, pool *pgxpool.Pool, userID, subID int) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`
	var out models.Subscription
	err := pool.QueryRow(ctx, query, subID, userID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.Merchant, &out.Amount, &out.BillingCycle,
			&out.NextBillingDate, &out.UsesPerMonth, &out.IsActive, &out.CategoryID,
			&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetAllSubscriptionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY next_billing_date, id
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var s models.Subscription
		err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Merchant, &s.Amount, &s.BillingCycle,
			&s.NextBillingDate, &s.UsesPerMonth, &s.IsActive, &s.CategoryID,
			&s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func UpdateSubscription(ctx context.Context, pool *pgxpool.Pool, s *models.Subscription) (*models.Subscription, error) {
	query := `
		UPDATE subscriptions
		SET name = $1, merchant = $2, amount = $3, billing_cycle = $4, next_billing_date = $5,
		    uses_per_month = $6, is_active = $7, category_id = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING ` + subscriptionColumns
	var out models.Subscription
	err := pool.QueryRow(ctx, query,
		s.Name, s.Merchant, s.Amount, s.BillingCycle, s.NextBillingDate,
		s.UsesPerMonth, s.IsActive, s.CategoryID, s.ID, s.UserID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.Merchant, &out.Amount, &out.BillingCycle,
			&out.NextBillingDate, &out.UsesPerMonth, &out.IsActive, &out.CategoryID,
			&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func DeleteSubscription(ctx context.Context, pool *pgxpool.Pool, userID, subID int) error {
	query := `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, subID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found")
	}
	return nil
}
