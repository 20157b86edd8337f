package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/rules"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// autoCategorize runs the user's category rules against a record and
// returns the winning category, or nil when nothing matches. Evaluator
// failures degrade to uncategorized with a warning; the row is still saved.
func autoCategorize(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger, userID int, txType rules.TransactionType, record rules.Record) *int {
	categoryID, matched, err := db.ApplyCategoryRules(ctx, pool, userID, txType, record)
	if err != nil {
		logger.Warn("rule evaluation failed, saving uncategorized",
			zap.Int("user_id", userID),
			zap.String("transaction_type", string(txType)),
			zap.Error(err))
		return nil
	}
	if !matched {
		return nil
	}
	return &categoryID
}
