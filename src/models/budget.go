package models

import "time"

type Budget struct {
	ID          int                `json:"id"`
	UserID      int                `json:"user_id"`
	Name        string             `json:"name"`
	Amount      float64            `json:"amount"`
	Allocations []BudgetAllocation `json:"allocations,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// BudgetAllocation assigns a percentage of the budget to a category.
type BudgetAllocation struct {
	ID         int     `json:"id"`
	BudgetID   int     `json:"budget_id"`
	CategoryID int     `json:"category_id"`
	Percent    float64 `json:"percent"`
}

// BudgetSummary compares allocations against actual spend for one month.
type BudgetSummary struct {
	BudgetID           int                 `json:"budget_id"`
	Month              string              `json:"month"`
	Amount             float64             `json:"amount"`
	UnallocatedPercent float64             `json:"unallocated_percent"`
	Lines              []BudgetSummaryLine `json:"lines"`
}

type BudgetSummaryLine struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Percent      float64 `json:"percent"`
	Allocated    float64 `json:"allocated"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
}
