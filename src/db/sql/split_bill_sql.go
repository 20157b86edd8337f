package db

import (
	"centsible-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const splitBillColumns = `id, user_id, name, total_amount, date, share_token, category_id, created_at`

// CreateSplitBill inserts the bill and its participants in one transaction.
// The caller supplies a fresh share token.
func CreateSplitBill(ctx context.Context, pool *pgxpool.Pool, bill *models.SplitBill) (*models.SplitBill, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO split_bills (user_id, name, total_amount, date, share_token, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + splitBillColumns
	var out models.SplitBill
	err = tx.QueryRow(ctx, query,
		bill.UserID, bill.Name, bill.TotalAmount, bill.Date, bill.ShareToken, bill.CategoryID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TotalAmount, &out.Date,
			&out.ShareToken, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, p := range bill.Participants {
		var row models.SplitBillParticipant
		err := tx.QueryRow(ctx, `
			INSERT INTO split_bill_participants (bill_id, name, share_amount)
			VALUES ($1, $2, $3)
			RETURNING id, bill_id, name, share_amount, settled
		`, out.ID, p.Name, p.ShareAmount).
			Scan(&row.ID, &row.BillID, &row.Name, &row.ShareAmount, &row.Settled)
		if err != nil {
			return nil, fmt.Errorf("failed to insert participant: %w", err)
		}
		out.Participants = append(out.Participants, row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func GetSplitBillByID(ctx context.Context, pool *pgxpool.Pool, userID, billID int) (*models.SplitBill, error) {
	query := `SELECT ` + splitBillColumns + ` FROM split_bills WHERE id = $1 AND user_id = $2`
	var out models.SplitBill
	err := pool.QueryRow(ctx, query, billID, userID).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TotalAmount, &out.Date,
			&out.ShareToken, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	out.Participants, err = getParticipants(ctx, pool, out.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSplitBillByShareToken is the unauthenticated lookup behind share
// links. The token is the only capability required.
func GetSplitBillByShareToken(ctx context.Context, pool *pgxpool.Pool, token string) (*models.SplitBill, error) {
	query := `SELECT ` + splitBillColumns + ` FROM split_bills WHERE share_token = $1`
	var out models.SplitBill
	err := pool.QueryRow(ctx, query, token).
		Scan(&out.ID, &out.UserID, &out.Name, &out.TotalAmount, &out.Date,
			&out.ShareToken, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	out.Participants, err = getParticipants(ctx, pool, out.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetAllSplitBillsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.SplitBill, error) {
	query := `SELECT ` + splitBillColumns + ` FROM split_bills WHERE user_id = $1 ORDER BY date DESC, id DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.SplitBill
	for rows.Next() {
		var b models.SplitBill
		err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.TotalAmount, &b.Date,
			&b.ShareToken, &b.CategoryID, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bills {
		bills[i].Participants, err = getParticipants(ctx, pool, bills[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return bills, nil
}

// SettleParticipant marks one participant's share as paid. Ownership is
// checked through the bill row.
func SettleParticipant(ctx context.Context, pool *pgxpool.Pool, userID, billID, participantID int) error {
	query := `
		UPDATE split_bill_participants p
		SET settled = TRUE
		FROM split_bills b
		WHERE p.id = $1 AND p.bill_id = $2 AND b.id = p.bill_id AND b.user_id = $3
	`
	cmd, err := pool.Exec(ctx, query, participantID, billID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("participant not found")
	}
	return nil
}

func DeleteSplitBill(ctx context.Context, pool *pgxpool.Pool, userID, billID int) error {
	query := `DELETE FROM split_bills WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, billID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("split bill not found")
	}
	return nil
}

func getParticipants(ctx context.Context, pool *pgxpool.Pool, billID int) ([]models.SplitBillParticipant, error) {
	query := `
		SELECT id, bill_id, name, share_amount, settled
		FROM split_bill_participants
		WHERE bill_id = $1
		ORDER BY id
	`
	rows, err := pool.Query(ctx, query, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.SplitBillParticipant
	for rows.Next() {
		var p models.SplitBillParticipant
		if err := rows.Scan(&p.ID, &p.BillID, &p.Name, &p.ShareAmount, &p.Settled); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
