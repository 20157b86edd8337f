package db

import (
	"centsible-server/src/db"
	"centsible-server/src/models"
	"centsible-server/src/rules"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryRuleColumns = `id, user_id, name, match_field, match_operator, match_value, category_id, applies_to, priority, is_active, created_at, updated_at`

func CreateCategoryRule(ctx context.Context, pool *pgxpool.Pool, rule *models.CategoryRule) (*models.CategoryRule, error) {
	query := `
		INSERT INTO category_rules (user_id, name, match_field, match_operator, match_value, category_id, applies_to, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + categoryRuleColumns
	var r models.CategoryRule
	err := pool.QueryRow(ctx, query,
		rule.UserID, rule.Name, rule.MatchField, rule.MatchOperator, rule.MatchValue,
		rule.CategoryID, rule.AppliesTo, rule.Priority, rule.IsActive).
		Scan(&r.ID, &r.UserID, &r.Name, &r.MatchField, &r.MatchOperator, &r.MatchValue,
			&r.CategoryID, &r.AppliesTo, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	clearUserRuleCache(rule.UserID)
	return &r, nil
}

func GetCategoryRuleByID(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int) (*models.CategoryRule, error) {
	query := `SELECT ` + categoryRuleColumns + ` FROM category_rules WHERE id = $1 AND user_id = $2`
	var r models.CategoryRule
	err := pool.QueryRow(ctx, query, ruleID, userID).
		Scan(&r.ID, &r.UserID, &r.Name, &r.MatchField, &r.MatchOperator, &r.MatchValue,
			&r.CategoryID, &r.AppliesTo, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func GetAllCategoryRules(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.CategoryRule, error) {
	query := `
		SELECT ` + categoryRuleColumns + `
		FROM category_rules
		WHERE user_id = $1
		ORDER BY priority DESC, id ASC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CategoryRule
	for rows.Next() {
		var r models.CategoryRule
		err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.MatchField, &r.MatchOperator, &r.MatchValue,
			&r.CategoryID, &r.AppliesTo, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func UpdateCategoryRule(ctx context.Context, pool *pgxpool.Pool, rule *models.CategoryRule) (*models.CategoryRule, error) {
	query := `
		UPDATE category_rules
		SET name = $1, match_field = $2, match_operator = $3, match_value = $4,
		    category_id = $5, applies_to = $6, priority = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING ` + categoryRuleColumns
	var r models.CategoryRule
	err := pool.QueryRow(ctx, query,
		rule.Name, rule.MatchField, rule.MatchOperator, rule.MatchValue,
		rule.CategoryID, rule.AppliesTo, rule.Priority, rule.IsActive,
		rule.ID, rule.UserID).
		Scan(&r.ID, &r.UserID, &r.Name, &r.MatchField, &r.MatchOperator, &r.MatchValue,
			&r.CategoryID, &r.AppliesTo, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	clearUserRuleCache(rule.UserID)
	return &r, nil
}

func DeleteCategoryRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int) error {
	query := `DELETE FROM category_rules WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, ruleID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category rule not found")
	}
	clearUserRuleCache(userID)
	return nil
}

// GetActiveRulesForType returns the user's active rules restricted to
// txType, in evaluation order. The set is cached per user and type; every
// rule write clears the user's entries.
func GetActiveRulesForType(ctx context.Context, pool *pgxpool.Pool, userID int, txType rules.TransactionType) ([]rules.Rule, error) {
	cacheKey := ruleCacheKey(userID, txType)
	if cached, found := db.Cache.Get(cacheKey); found {
		if ruleset, ok := cached.([]rules.Rule); ok {
			return ruleset, nil
		}
	}

	query := `
		SELECT ` + categoryRuleColumns + `
		FROM category_rules
		WHERE user_id = $1 AND is_active = TRUE AND $2 = ANY(applies_to)
		ORDER BY priority DESC, id ASC
	`
	rows, err := pool.Query(ctx, query, userID, string(txType))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category rules: %w", err)
	}
	defer rows.Close()

	var ruleset []rules.Rule
	for rows.Next() {
		var r models.CategoryRule
		err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.MatchField, &r.MatchOperator, &r.MatchValue,
			&r.CategoryID, &r.AppliesTo, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category rule: %w", err)
		}
		ruleset = append(ruleset, r.Rule())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	db.SetRuleCache(cacheKey, ruleset)
	return ruleset, nil
}

// ApplyCategoryRules evaluates the user's rules against one record and
// returns the winning category. A database failure is returned to the
// caller rather than reported as "no match".
func ApplyCategoryRules(ctx context.Context, pool *pgxpool.Pool, userID int, txType rules.TransactionType, record rules.Record) (int, bool, error) {
	ruleset, err := GetActiveRulesForType(ctx, pool, userID, txType)
	if err != nil {
		return 0, false, err
	}
	categoryID, matched := rules.Evaluate(txType, record, ruleset)
	return categoryID, matched, nil
}

// RuleAdjustment records one recategorized row for reporting.
type RuleAdjustment struct {
	ExpenseID     int  `json:"expense_id"`
	OldCategoryID *int `json:"old_category_id"`
	NewCategoryID int  `json:"new_category_id"`
}

// RecategorizeExpenses re-evaluates every expense and income row of the
// user against the current rule set and rewrites categories that change.
func RecategorizeExpenses(ctx context.Context, pool *pgxpool.Pool, userID int) ([]RuleAdjustment, error) {
	query := `
		SELECT id, kind, merchant, note, tag, location, category_id
		FROM expenses
		WHERE user_id = $1
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	defer rows.Close()

	type expenseRow struct {
		ID         int
		Kind       string
		Record     rules.Record
		CategoryID *int
	}
	var expenses []expenseRow
	for rows.Next() {
		var (
			row                           expenseRow
			merchant, note, tag, location string
		)
		if err := rows.Scan(&row.ID, &row.Kind, &merchant, &note, &tag, &location, &row.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		row.Record = rules.Record{
			rules.FieldMerchant: merchant,
			rules.FieldNote:     note,
			rules.FieldTag:      tag,
			rules.FieldLocation: location,
		}
		expenses = append(expenses, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var adjusted []RuleAdjustment
	for _, e := range expenses {
		categoryID, matched, err := ApplyCategoryRules(ctx, pool, userID, rules.TransactionType(e.Kind), e.Record)
		if err != nil {
			return adjusted, err
		}
		if !matched || (e.CategoryID != nil && *e.CategoryID == categoryID) {
			continue
		}
		_, err = pool.Exec(ctx, `UPDATE expenses SET category_id = $1, updated_at = NOW() WHERE id = $2`, categoryID, e.ID)
		if err != nil {
			return adjusted, fmt.Errorf("failed to update expense category: %w", err)
		}
		adjusted = append(adjusted, RuleAdjustment{ExpenseID: e.ID, OldCategoryID: e.CategoryID, NewCategoryID: categoryID})
	}

	if len(adjusted) > 0 {
		db.ClearAllSummaryCaches()
	}
	return adjusted, nil
}

func ruleCacheKey(userID int, txType rules.TransactionType) string {
	return fmt.Sprintf("rules:%d:%s", userID, txType)
}

func clearUserRuleCache(userID int) {
	for _, t := range rules.TransactionTypes {
		db.DelRuleCache(ruleCacheKey(userID, t))
	}
}
