package models

import (
	"time"

	"centsible-server/src/rules"
)

// CategoryRule is the persisted form of a rule evaluated by the rules
// package. applies_to is stored as a Postgres text[].
type CategoryRule struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	MatchField    string    `json:"match_field"`
	MatchOperator string    `json:"match_operator"`
	MatchValue    string    `json:"match_value"`
	CategoryID    int       `json:"category_id"`
	AppliesTo     []string  `json:"applies_to"`
	Priority      int       `json:"priority"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Rule converts the persisted row into the evaluator's shape.
func (c CategoryRule) Rule() rules.Rule {
	return rules.Rule{
		ID:         c.ID,
		Name:       c.Name,
		Field:      rules.Field(c.MatchField),
		Operator:   rules.Operator(c.MatchOperator),
		Value:      c.MatchValue,
		CategoryID: c.CategoryID,
		AppliesTo:  c.AppliesTo,
		Priority:   c.Priority,
		Active:     c.IsActive,
	}
}
