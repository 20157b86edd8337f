package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const watchlistColumns = `id, user_id, symbol, name, investment_type, target_price, notes, category_id, created_at`

func CreateWatchlistItem(ctx context.Context, pool *pgxpool.Pool, item *models.WatchlistItem) (*models.WatchlistItem, error) {
	query := `
		INSERT INTO watchlist_items (user_id, symbol, name, investment_type, target_price, notes, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + watchlistColumns
	var out models.WatchlistItem
	err := pool.QueryRow(ctx, query,
		item.UserID, item.Symbol, item.Name, item.InvestmentType, item.TargetPrice, item.Notes, item.CategoryID).
		Scan(&out.ID, &out.UserID, &out.Symbol, &out.Name, &out.InvestmentType,
			&out.TargetPrice, &out.Notes, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetWatchlistItemByID(ctx context.Context, pool *pgxpool.Pool, userID, itemID int) (*models.WatchlistItem, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist_items WHERE id = $1 AND user_id = $2`
	var out models.WatchlistItem
	err := pool.QueryRow(ctx, query, itemID, userID).
		Scan(&out.ID, &out.UserID, &out.Symbol, &out.Name, &out.InvestmentType,
			&out.TargetPrice, &out.Notes, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetAllWatchlistItemsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.WatchlistItem, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist_items WHERE user_id = $1 ORDER BY symbol`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Symbol, &item.Name, &item.InvestmentType,
			&item.TargetPrice, &item.Notes, &item.CategoryID, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func UpdateWatchlistItem(ctx context.Context, pool *pgxpool.Pool, item *models.WatchlistItem) (*models.WatchlistItem, error) {
	query := `
		UPDATE watchlist_items
		SET symbol = $1, name = $2, investment_type = $3, target_price = $4, notes = $5, category_id = $6
		WHERE id = $7 AND user_id = $8
		RETURNING ` + watchlistColumns
	var out models.WatchlistItem
	err := pool.QueryRow(ctx, query,
		item.Symbol, item.Name, item.InvestmentType, item.TargetPrice, item.Notes,
		item.CategoryID, item.ID, item.UserID).
		Scan(&out.ID, &out.UserID, &out.Symbol, &out.Name, &out.InvestmentType,
			&out.TargetPrice, &out.Notes, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func DeleteWatchlistItem(ctx context.Context, pool *pgxpool.Pool, userID, itemID int) error {
	query := `DELETE FROM watchlist_items WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("watchlist item not found")
	}
	return nil
}
